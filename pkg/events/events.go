// Package events implements the per-chart lifecycle event registry.
//
// The set of event names is closed: registering under an unknown name is
// an error rather than a silent no-op, so a typo in a listener hookup
// fails at registration time instead of never firing. Handlers run
// synchronously in registration order.
package events

import (
	"github.com/chartlink/chartlink/pkg/charterrors"
)

// Type names a chart lifecycle event.
type Type string

const (
	// Renderlet fires after both render and redraw complete, for
	// incremental decoration of the drawn output.
	Renderlet Type = "renderlet"

	// Pretransition fires after a render or redraw, before any visual
	// transition scheduled by the draw collaborator begins.
	Pretransition Type = "pretransition"

	PreRender  Type = "preRender"
	PostRender Type = "postRender"
	PreRedraw  Type = "preRedraw"
	PostRedraw Type = "postRedraw"

	// Filtered fires after a chart's filter state changed. The handler
	// argument is the applied filter value, or nil when filters were
	// cleared.
	Filtered Type = "filtered"

	// Zoomed fires after a chart changed its visible domain.
	Zoomed Type = "zoomed"
)

// knownTypes is the closed set of recognized lifecycle events.
var knownTypes = map[Type]struct{}{
	Renderlet:     {},
	Pretransition: {},
	PreRender:     {},
	PostRender:    {},
	PreRedraw:     {},
	PostRedraw:    {},
	Filtered:      {},
	Zoomed:        {},
}

// Valid reports whether t is a recognized lifecycle event.
func (t Type) Valid() bool {
	_, ok := knownTypes[t]
	return ok
}

// Handler receives the event source plus an event-specific argument:
// the applied filter value for Filtered, nil otherwise.
type Handler[T any] func(source T, arg any)

// Registry stores lifecycle handlers for one event source, typically a
// chart. The zero value is ready to use.
type Registry[T any] struct {
	handlers map[Type][]Handler[T]
}

// On registers a handler for the given event. Handlers fire in
// registration order. Registering under an unknown event name returns an
// InvalidStateError and registers nothing.
func (r *Registry[T]) On(t Type, h Handler[T]) error {
	if !t.Valid() {
		return &charterrors.InvalidStateError{
			Op:     "on",
			Reason: "unknown lifecycle event " + string(t),
		}
	}

	if r.handlers == nil {
		r.handlers = make(map[Type][]Handler[T])
	}
	r.handlers[t] = append(r.handlers[t], h)
	return nil
}

// Fire invokes every handler registered for the event, in registration
// order. Firing an event with no handlers is a no-op.
func (r *Registry[T]) Fire(t Type, source T, arg any) {
	for _, h := range r.handlers[t] {
		h(source, arg)
	}
}
