// Package charterrors defines the error kinds surfaced by the coordination
// engine.
//
// InvalidStateError and InvalidFilterError are fatal to the call that raised
// them but leave filter and registry state untouched: every operation
// validates before it mutates. DrawError wraps a failure from an external
// draw collaborator, and BroadcastError aggregates the DrawErrors collected
// during a group broadcast so that one chart's failure never hides another's.
package charterrors

import (
	"fmt"
	"strings"
)

// InvalidStateError indicates a chart was used before its mandatory
// bindings were set, or a lifecycle operation was requested that the
// chart's current state does not allow.
type InvalidStateError struct {
	// Op is the operation that was attempted, like "render".
	Op string

	// Reason describes what was wrong.
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("charterrors: invalid state in %s: %s", e.Op, e.Reason)
}

// InvalidFilterError indicates a malformed filter value, such as a
// range-shaped value whose endpoints are out of order.
type InvalidFilterError struct {
	// Value is the offending filter value.
	Value any

	// Reason describes what was wrong with it.
	Reason string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf(
		"charterrors: invalid filter %v: %s",
		e.Value, e.Reason)
}

// DrawError indicates that a chart's external draw collaborator failed
// during a render or redraw.
type DrawError struct {
	// ChartID is the anchor ID of the chart whose drawer failed.
	ChartID string

	// Phase is "render" or "redraw".
	Phase string

	// Err is the underlying error from the draw collaborator.
	Err error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf(
		"charterrors: chart %q failed to %s: %v",
		e.ChartID, e.Phase, e.Err)
}

func (e *DrawError) Unwrap() error { return e.Err }

// BroadcastError reports the set of charts that failed during a group
// broadcast. The broadcast itself always attempts every member chart.
type BroadcastError struct {
	// Failures holds one entry per failing chart, in attempt order.
	Failures []*DrawError
}

func (e *BroadcastError) Error() string {
	ids := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, f.ChartID)
	}
	return fmt.Sprintf(
		"charterrors: %d chart(s) failed during broadcast: %s",
		len(e.Failures), strings.Join(ids, ", "))
}

// Unwrap allows errors.Is and errors.As to match the individual failures.
func (e *BroadcastError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}
