// Package registry tracks which charts redraw together.
//
// A Registry maps group names to the charts registered under them; group
// membership determines the blast radius of a redraw broadcast. A chart
// belongs to exactly one group at a time. The registry is expected to be
// driven from a single goroutine (the UI loop) but is mutex-guarded so
// accidental cross-goroutine use does not corrupt it.
package registry

import (
	"sync"

	"github.com/chartlink/chartlink/internal/chartmetrics"
	"github.com/chartlink/chartlink/internal/coalesce"
	"github.com/chartlink/chartlink/internal/observability"
	"github.com/chartlink/chartlink/internal/taskqueue"
)

// DefaultGroup is the group charts join when no group name is given.
const DefaultGroup = "default"

// Chart is the contract a visual component must satisfy to participate
// in group broadcasts. It is implemented by pkg/chart.
type Chart interface {
	// AnchorID identifies the chart by its anchor.
	AnchorID() string

	// Render draws the chart from scratch.
	Render() error

	// Redraw updates the chart from freshly pulled data.
	Redraw() error
}

// Params configures a Registry.
type Params struct {
	// Queue is where coalesced broadcasts run. Nil means inline.
	Queue taskqueue.Queue

	// Logger receives broadcast diagnostics. Nil disables logging.
	Logger *observability.Logger

	// Metrics counts broadcasts. Nil disables counting.
	Metrics *chartmetrics.Metrics
}

// Registry is the process-wide chart-group state. It starts empty;
// teardown is explicit deregistration (or Clear).
type Registry struct {
	mu sync.Mutex

	// groups maps group name to charts in registration order.
	groups map[string][]Chart

	// groupOrder preserves first-registration order of group names so
	// cross-group broadcasts are deterministic.
	groupOrder []string

	// pending tracks groups dirtied since the last flush.
	pending *pendingFlush

	coalescer *coalesce.Coalescer
	logger    *observability.Logger
	metrics   *chartmetrics.Metrics
}

// New creates an empty registry.
func New(params Params) *Registry {
	if params.Queue == nil {
		params.Queue = taskqueue.Immediate()
	}
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}

	r := &Registry{
		groups:  make(map[string][]Chart),
		pending: newPendingFlush(),
		logger:  params.Logger,
		metrics: params.Metrics,
	}
	r.coalescer = coalesce.New(params.Queue, params.Logger)
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared process-wide registry. It uses an inline
// queue, so scheduled broadcasts flush as soon as the current trigger
// returns.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = New(Params{})
	})
	return defaultRegistry
}

// Register adds the chart to the named group, moving it out of its
// current group if it has one. An empty group name means DefaultGroup.
// Registering a chart already in the group is a no-op.
func (r *Registry) Register(c Chart, group string) {
	if group == "" {
		group = DefaultGroup
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(c)

	if _, ok := r.groups[group]; !ok {
		r.groupOrder = append(r.groupOrder, group)
	}
	r.groups[group] = append(r.groups[group], c)

	r.logger.Debug("registry: registered chart",
		"chart", c.AnchorID(), "group", group)
}

// Deregister removes the chart from the named group, or from whichever
// group holds it when the name is empty. A deregistered chart no longer
// receives broadcasts.
func (r *Registry) Deregister(c Chart, group string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if group == "" {
		r.removeLocked(c)
		return
	}

	charts := r.groups[group]
	for i, member := range charts {
		if member == c {
			r.groups[group] = append(charts[:i], charts[i+1:]...)
			break
		}
	}
	r.pruneLocked(group)
}

// ChartsInGroup returns a snapshot of the group's charts in registration
// order, safe against mutation during iteration.
func (r *Registry) ChartsInGroup(group string) []Chart {
	if group == "" {
		group = DefaultGroup
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	charts := r.groups[group]
	out := make([]Chart, len(charts))
	copy(out, charts)
	return out
}

// GroupOf returns the name of the group holding the chart.
func (r *Registry) GroupOf(c Chart) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, group := range r.groupOrder {
		for _, member := range r.groups[group] {
			if member == c {
				return group, true
			}
		}
	}
	return "", false
}

// GroupNames returns the group names in first-registration order.
func (r *Registry) GroupNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.groupOrder))
	copy(out, r.groupOrder)
	return out
}

// Clear deregisters every chart and drops any pending broadcast.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.groups = make(map[string][]Chart)
	r.groupOrder = nil
	r.pending = newPendingFlush()
}

// Close drops pending broadcasts and makes future scheduling a no-op.
// Registered charts remain until deregistered.
func (r *Registry) Close() {
	r.coalescer.Stop()
}

// removeLocked takes the chart out of whichever group holds it.
func (r *Registry) removeLocked(c Chart) {
	for _, group := range r.groupOrder {
		charts := r.groups[group]
		for i, member := range charts {
			if member == c {
				r.groups[group] = append(charts[:i], charts[i+1:]...)
				r.pruneLocked(group)
				return
			}
		}
	}
}

// pruneLocked forgets a group once its last chart is gone.
func (r *Registry) pruneLocked(group string) {
	if len(r.groups[group]) > 0 {
		return
	}
	delete(r.groups, group)
	for i, name := range r.groupOrder {
		if name == group {
			r.groupOrder = append(r.groupOrder[:i], r.groupOrder[i+1:]...)
			return
		}
	}
}
