package chart

import (
	"github.com/chartlink/chartlink/pkg/charterrors"
	"github.com/chartlink/chartlink/pkg/events"
	"github.com/chartlink/chartlink/pkg/filters"
)

// Filter toggles the value's membership in the chart's active filters:
// an equal member is removed, a new value is added, and in ranged modes
// the value replaces the set. A nil value clears all filters. The
// resulting predicate is pushed onto the chart's dimension and the
// filtered event fires with the applied value.
func (c *Chart) Filter(value any) error {
	if value == nil {
		return c.FilterAll()
	}
	if err := c.checkDimension("filter"); err != nil {
		return err
	}

	if err := c.store.Toggle(value); err != nil {
		return err
	}
	c.applyToDimension()
	c.listeners.Fire(events.Filtered, c, value)
	return nil
}

// ReplaceFilter clears the chart's filters and applies the given values.
func (c *Chart) ReplaceFilter(values ...any) error {
	if err := c.checkDimension("replaceFilter"); err != nil {
		return err
	}

	if err := c.store.Replace(values...); err != nil {
		return err
	}
	c.applyToDimension()

	c.listeners.Fire(events.Filtered, c, c.store.Current())
	return nil
}

// FilterAll clears every filter on the chart and its dimension.
func (c *Chart) FilterAll() error {
	if err := c.checkDimension("filterAll"); err != nil {
		return err
	}

	c.store.Clear()
	c.applyToDimension()
	c.listeners.Fire(events.Filtered, c, nil)
	return nil
}

// HasFilter reports whether any filter is active, or, given a value,
// whether a filter equal to it is active.
func (c *Chart) HasFilter(value ...any) bool {
	if len(value) == 0 {
		return c.store.Has()
	}
	return c.store.HasValue(value[0])
}

// Filters returns an ordered copy of the active filters.
func (c *Chart) Filters() []any {
	return c.store.Values()
}

// CurrentFilter returns the single active filter if there is exactly
// one, the ordered list if there are several, and nil if there are none.
func (c *Chart) CurrentFilter() any {
	return c.store.Current()
}

// FilterMode returns the chart's filter mode.
func (c *Chart) FilterMode() filters.Mode {
	return c.store.Mode()
}

// HandleFilterSelection is the filter-change protocol for interaction
// handlers: apply the selected value, redraw this chart to reflect its
// own new state, then schedule a coalesced redraw of every other chart
// in the group. The triggering chart is excluded from the broadcast so
// it is never drawn twice for one selection.
//
// The returned error reports a failure of this chart's own apply or
// redraw; the group broadcast is scheduled regardless, and its failures
// surface through the registry's logger.
func (c *Chart) HandleFilterSelection(value any) error {
	if err := c.Filter(value); err != nil {
		return err
	}

	err := c.Redraw()
	c.reg.ScheduleRedrawAll(c.groupName, c)
	return err
}

// HandleZoom is the zoom protocol for focus charts: replace the chart's
// filter with the new visible range, fire zoomed, reflect locally and
// schedule the group broadcast.
func (c *Chart) HandleZoom(low, high float64) error {
	r, err := filters.NewRanged(low, high)
	if err != nil {
		return err
	}
	if err := c.ReplaceFilter(r); err != nil {
		return err
	}
	c.listeners.Fire(events.Zoomed, c, r)

	err = c.Redraw()
	c.reg.ScheduleRedrawAll(c.groupName, c)
	return err
}

// RedrawGroup schedules a coalesced redraw of every chart in this
// chart's group, this one included.
func (c *Chart) RedrawGroup() {
	c.reg.ScheduleRedrawAll(c.groupName)
}

// RenderGroup re-renders every chart in this chart's group immediately,
// used when the underlying data cube changed shape.
func (c *Chart) RenderGroup() error {
	return c.reg.RenderAll(c.groupName)
}

// applyToDimension pushes the store's current predicate onto the
// dimension; an empty store clears the dimension's filter.
func (c *Chart) applyToDimension() {
	c.dim.Filter(c.store.Predicate())
}

// checkDimension rejects filter mutations on a chart with no bound
// dimension, before any state changes.
func (c *Chart) checkDimension(op string) error {
	if c.dim == nil {
		return &charterrors.InvalidStateError{
			Op:     op,
			Reason: "chart has no dimension bound",
		}
	}
	return nil
}
