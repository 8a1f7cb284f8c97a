package registry

import (
	"errors"

	"github.com/chartlink/chartlink/pkg/charterrors"
)

// RedrawAll redraws every chart in the named groups, or in every group
// when none are named. A chart's failure never prevents the remaining
// charts from being attempted; the collected failures are returned as a
// *charterrors.BroadcastError. The call is synchronous: every member
// chart has completed its redraw by the time it returns.
func (r *Registry) RedrawAll(groups ...string) error {
	return r.broadcast("redraw", Chart.Redraw, groups, nil)
}

// RenderAll is RedrawAll with a full re-render, used when the underlying
// data cube changed shape rather than just its filters.
func (r *Registry) RenderAll(groups ...string) error {
	return r.broadcast("render", Chart.Render, groups, nil)
}

// broadcast fans draw out to each chart of each listed group, skipping
// charts in skip, and aggregates failures.
func (r *Registry) broadcast(
	kind string,
	draw func(Chart) error,
	groups []string,
	skip map[Chart]struct{},
) error {
	if len(groups) == 0 {
		groups = r.GroupNames()
	}

	var failures []*charterrors.DrawError
	for _, group := range groups {
		r.metrics.CountBroadcast(group, kind)

		for _, c := range r.ChartsInGroup(group) {
			if _, skipped := skip[c]; skipped {
				continue
			}
			if err := draw(c); err != nil {
				failures = append(failures, asDrawError(c, kind, err))
			}
		}
	}

	if len(failures) == 0 {
		return nil
	}
	return &charterrors.BroadcastError{Failures: failures}
}

func asDrawError(c Chart, phase string, err error) *charterrors.DrawError {
	var drawErr *charterrors.DrawError
	if errors.As(err, &drawErr) {
		return drawErr
	}
	return &charterrors.DrawError{
		ChartID: c.AnchorID(),
		Phase:   phase,
		Err:     err,
	}
}

// ScheduleRedrawAll marks the group dirty and arms one coalesced flush.
//
// All schedules that happen before the flush runs collapse into a single
// broadcast; dirty groups flush in first-trigger order. Charts passed as
// reflected already redrew themselves for this trigger (a chart reflects
// its own filter change locally) and are skipped by the flush so they are
// not drawn twice.
func (r *Registry) ScheduleRedrawAll(group string, reflected ...Chart) {
	if group == "" {
		group = DefaultGroup
	}

	r.mu.Lock()
	r.pending.add(group, reflected)
	r.mu.Unlock()

	r.coalescer.Arm(r.flush)
}

// Flush runs any pending coalesced broadcast immediately. It is a no-op
// when nothing is pending.
func (r *Registry) Flush() {
	r.flush()
}

func (r *Registry) flush() {
	r.mu.Lock()
	pending := r.pending
	r.pending = newPendingFlush()
	r.mu.Unlock()

	for _, group := range pending.groups {
		err := r.broadcast(
			"redraw", Chart.Redraw, []string{group}, pending.reflected[group])
		if err != nil {
			r.logger.CaptureError(err, "group", group)
		}
	}
}

// pendingFlush records which groups were dirtied since the last flush and
// which charts already reflected their own state this turn.
type pendingFlush struct {
	// groups lists dirty group names in first-trigger order.
	groups []string

	// reflected holds, per dirty group, the charts to skip.
	reflected map[string]map[Chart]struct{}
}

func newPendingFlush() *pendingFlush {
	return &pendingFlush{reflected: make(map[string]map[Chart]struct{})}
}

func (p *pendingFlush) add(group string, reflected []Chart) {
	if _, dirty := p.reflected[group]; !dirty {
		p.groups = append(p.groups, group)
		p.reflected[group] = make(map[Chart]struct{})
	}
	for _, c := range reflected {
		p.reflected[group][c] = struct{}{}
	}
}
