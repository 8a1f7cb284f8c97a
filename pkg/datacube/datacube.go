// Package datacube declares the interfaces through which the coordination
// engine talks to an external data cube.
//
// The cube itself (predicate storage and aggregation) lives outside this
// module. A chart writes to its Dimension on every filter mutation and
// reads from its Group (or ValueGroup) on every redraw. A reference
// in-memory implementation for tests and demos is in internal/memcube.
package datacube

// Predicate decides whether a dimension key passes the current filter.
type Predicate func(key any) bool

// Dimension is a filterable axis of the data cube.
type Dimension interface {
	// Filter replaces the dimension's filter predicate. A nil predicate
	// clears all filtering on the dimension.
	Filter(p Predicate)
}

// Row is one aggregated bin produced by a Group.
type Row struct {
	Key   any
	Value float64
}

// Group produces the aggregated rows for a dimension.
//
// All must reflect filters applied to the cube's other dimensions but not
// the group's own dimension, so a chart keeps showing the full span of its
// own axis while it is filtered.
type Group interface {
	// All returns the aggregated rows in key order.
	All() []Row
}

// ValueGroup produces a single aggregate for the whole cube, used by
// scalar displays such as a number widget.
type ValueGroup interface {
	// Value returns the aggregate over all rows passing every filter.
	Value() float64
}
