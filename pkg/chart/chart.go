// Package chart implements the base chart: the render/redraw state
// machine, the filter API, and the hookup to the chart-group broadcast
// mechanism.
//
// A Chart owns no drawing code. It binds an Anchor (where it lives), a
// Drawer (how it looks), and a data-cube Dimension and Group (what it
// shows), and orchestrates the lifecycle between them: events fire at
// defined points, re-entrant draws are no-ops, and filter changes
// propagate to every other chart in the group through the registry.
package chart

import (
	"sync"

	"github.com/google/uuid"

	"github.com/chartlink/chartlink/internal/chartmetrics"
	"github.com/chartlink/chartlink/internal/observability"
	"github.com/chartlink/chartlink/pkg/charterrors"
	"github.com/chartlink/chartlink/pkg/datacube"
	"github.com/chartlink/chartlink/pkg/events"
	"github.com/chartlink/chartlink/pkg/filters"
	"github.com/chartlink/chartlink/pkg/registry"
)

// Drawer is the external draw collaborator for one chart type. Both
// methods must be idempotent under repeated calls with unchanged data.
type Drawer interface {
	// DoRender draws the chart from scratch.
	DoRender(c *Chart) error

	// DoRedraw updates an already-rendered chart from the chart's
	// freshly pulled data.
	DoRedraw(c *Chart) error
}

// drawState is the chart's position in the render/redraw cycle.
type drawState int

const (
	stateIdle drawState = iota
	stateRendering
	stateRedrawing
)

// Params configures a new chart. Anchor and Drawer are required at
// construction; Dimension and Group may be bound later but must be set
// before the first render or redraw.
type Params struct {
	Anchor Anchor
	Drawer Drawer

	Dimension  datacube.Dimension
	Group      datacube.Group
	ValueGroup datacube.ValueGroup

	// Registry defaults to the process-wide registry.
	Registry *registry.Registry

	// GroupName defaults to registry.DefaultGroup.
	GroupName string

	// FilterMode defaults to filters.ModeExact.
	FilterMode filters.Mode

	Margins             Margins
	MinWidth, MinHeight int

	// Palette provides per-key colors; nil uses the default palette.
	Palette *Palette

	Logger  *observability.Logger
	Metrics *chartmetrics.Metrics
}

// Chart is a visual component coordinated by the engine.
type Chart struct {
	mu    sync.Mutex
	state drawState

	anchorID string
	anchor   Anchor
	drawer   Drawer

	dim        datacube.Dimension
	group      datacube.Group
	valueGroup datacube.ValueGroup

	reg       *registry.Registry
	groupName string

	store     *filters.Store
	listeners events.Registry[*Chart]
	palette   *Palette

	margins             Margins
	minWidth, minHeight int
	width, height       int

	// rows is the data pulled by the most recent render or redraw.
	rows []datacube.Row

	logger  *observability.Logger
	metrics *chartmetrics.Metrics
}

// New creates a chart bound to its anchor and registers it with its
// group. The chart receives group broadcasts until Deregister is called.
func New(params Params) (*Chart, error) {
	if params.Anchor == nil {
		return nil, &charterrors.InvalidStateError{
			Op:     "new",
			Reason: "chart requires an anchor",
		}
	}
	if params.Drawer == nil {
		return nil, &charterrors.InvalidStateError{
			Op:     "new",
			Reason: "chart requires a draw collaborator",
		}
	}

	if params.Registry == nil {
		params.Registry = registry.Default()
	}
	if params.GroupName == "" {
		params.GroupName = registry.DefaultGroup
	}
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}
	if params.Palette == nil {
		params.Palette = NewPalette(nil)
	}
	if params.MinWidth <= 0 {
		params.MinWidth = DefaultMinWidth
	}
	if params.MinHeight <= 0 {
		params.MinHeight = DefaultMinHeight
	}

	anchorID := params.Anchor.ID()
	if anchorID == "" {
		anchorID = "chart-" + uuid.NewString()
	}

	c := &Chart{
		anchorID:   anchorID,
		anchor:     params.Anchor,
		drawer:     params.Drawer,
		dim:        params.Dimension,
		group:      params.Group,
		valueGroup: params.ValueGroup,
		reg:        params.Registry,
		groupName:  params.GroupName,
		store:      filters.NewStore(params.FilterMode),
		palette:    params.Palette,
		margins:    params.Margins,
		minWidth:   params.MinWidth,
		minHeight:  params.MinHeight,
		logger:     params.Logger.With("chart", anchorID),
		metrics:    params.Metrics,
	}

	c.reg.Register(c, c.groupName)
	return c, nil
}

// AnchorID identifies the chart by its anchor.
func (c *Chart) AnchorID() string { return c.anchorID }

// GroupName returns the name of the chart's coordination group.
func (c *Chart) GroupName() string { return c.groupName }

// Registry returns the registry the chart is coordinated through.
func (c *Chart) Registry() *registry.Registry { return c.reg }

// On registers a lifecycle event handler. The recognized events are the
// events.Type constants; anything else is an InvalidStateError.
func (c *Chart) On(t events.Type, h events.Handler[*Chart]) error {
	return c.listeners.On(t, h)
}

// Deregister removes the chart from its group. The chart stops receiving
// broadcasts; its filters and dimension are left as they are.
func (c *Chart) Deregister() {
	c.reg.Deregister(c, c.groupName)
}

// Render draws the chart from scratch: preRender, size recomputation
// from the anchor, a fresh data pull, the drawer's DoRender, then
// postRender, pretransition and renderlet.
//
// Calling Render while the chart is already rendering or redrawing is a
// no-op returning nil.
func (c *Chart) Render() error {
	if err := c.checkMandatory("render"); err != nil {
		return err
	}
	if !c.enter(stateRendering) {
		c.logger.Debug("chart: ignoring re-entrant render")
		return nil
	}
	defer c.leave()

	c.listeners.Fire(events.PreRender, c, nil)

	c.computeSize()
	c.pullData()

	if err := c.drawer.DoRender(c); err != nil {
		return c.drawFailed("render", err)
	}

	c.listeners.Fire(events.PostRender, c, nil)
	c.listeners.Fire(events.Pretransition, c, nil)
	c.listeners.Fire(events.Renderlet, c, nil)

	c.metrics.CountRender(c.anchorID)
	c.logger.Debug("chart: rendered")
	return nil
}

// Redraw updates the chart in place: preRedraw, a fresh pull of the
// bound group's aggregation (never a re-read of the dimension's filters,
// which the caller already applied), the drawer's DoRedraw, then
// postRedraw, pretransition and renderlet.
//
// Calling Redraw while the chart is already rendering or redrawing is a
// no-op returning nil.
func (c *Chart) Redraw() error {
	if err := c.checkMandatory("redraw"); err != nil {
		return err
	}
	if !c.enter(stateRedrawing) {
		c.logger.Debug("chart: ignoring re-entrant redraw")
		return nil
	}
	defer c.leave()

	c.listeners.Fire(events.PreRedraw, c, nil)

	c.pullData()

	if err := c.drawer.DoRedraw(c); err != nil {
		return c.drawFailed("redraw", err)
	}

	c.listeners.Fire(events.PostRedraw, c, nil)
	c.listeners.Fire(events.Pretransition, c, nil)
	c.listeners.Fire(events.Renderlet, c, nil)

	c.metrics.CountRedraw(c.anchorID)
	c.logger.Debug("chart: redrawn")
	return nil
}

// Data returns the rows pulled by the most recent render or redraw.
// Drawers call this during DoRender and DoRedraw.
func (c *Chart) Data() []datacube.Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]datacube.Row, len(c.rows))
	copy(out, c.rows)
	return out
}

// Value returns the bound ValueGroup's aggregate, freshly computed. It
// is zero when no ValueGroup is bound.
func (c *Chart) Value() float64 {
	if c.valueGroup == nil {
		return 0
	}
	return c.valueGroup.Value()
}

// enter moves the chart out of idle, refusing when a draw is already in
// progress.
func (c *Chart) enter(s drawState) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateIdle {
		return false
	}
	c.state = s
	return true
}

func (c *Chart) leave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = stateIdle
}

// checkMandatory fails fast when the chart is missing the bindings a
// draw needs, before any state transition or event fires. An
// aggregate-only chart needs just its ValueGroup; anything keyed needs
// both a dimension and a group.
func (c *Chart) checkMandatory(op string) error {
	if c.valueGroup != nil {
		return nil
	}
	if c.dim == nil {
		return &charterrors.InvalidStateError{
			Op:     op,
			Reason: "chart has no dimension bound",
		}
	}
	if c.group == nil {
		return &charterrors.InvalidStateError{
			Op:     op,
			Reason: "chart has no group bound",
		}
	}
	return nil
}

// pullData re-fetches the aggregated rows from the bound group.
func (c *Chart) pullData() {
	if c.group == nil {
		return
	}
	rows := c.group.All()

	c.mu.Lock()
	c.rows = rows
	c.mu.Unlock()
}

func (c *Chart) drawFailed(phase string, err error) error {
	drawErr := &charterrors.DrawError{
		ChartID: c.anchorID,
		Phase:   phase,
		Err:     err,
	}
	c.metrics.CountDrawFailure(c.anchorID, phase)
	c.logger.CaptureError(drawErr)
	return drawErr
}
