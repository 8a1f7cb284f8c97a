package filters

import (
	"github.com/chartlink/chartlink/pkg/charterrors"
	"github.com/chartlink/chartlink/pkg/datacube"
)

// Store is the per-chart ordered collection of active filter values.
//
// A failed mutation leaves the store unchanged: every operation validates
// its input before touching the collection.
type Store struct {
	mode   Mode
	values []any
}

// NewStore creates an empty store for the given mode.
func NewStore(mode Mode) *Store {
	return &Store{mode: mode}
}

// Mode returns the store's filter mode.
func (s *Store) Mode() Mode { return s.mode }

// Toggle removes the value when an equal member is already present and
// appends it otherwise. In ranged modes the value replaces the whole set
// instead: a brushed range supersedes the previous one rather than
// toggling against it.
func (s *Store) Toggle(v any) error {
	if err := s.validate(v); err != nil {
		return err
	}

	if s.mode.ranged() {
		s.values = []any{v}
		return nil
	}

	if i := s.indexOf(v); i >= 0 {
		s.values = append(s.values[:i], s.values[i+1:]...)
	} else {
		s.values = append(s.values, v)
	}
	return nil
}

// Replace clears the store and applies the given values in order.
func (s *Store) Replace(values ...any) error {
	for _, v := range values {
		if err := s.validate(v); err != nil {
			return err
		}
	}

	s.values = s.values[:0]
	s.values = append(s.values, values...)
	return nil
}

// Clear removes every filter value.
func (s *Store) Clear() {
	s.values = nil
}

// Has reports whether one or more filters are active.
func (s *Store) Has() bool {
	return len(s.values) > 0
}

// HasValue reports whether a filter equal to v is active. When exactly one
// filter is active it is compared directly; otherwise membership in the
// set decides.
func (s *Store) HasValue(v any) bool {
	if len(s.values) == 1 {
		return Equal(s.values[0], v)
	}
	return s.indexOf(v) >= 0
}

// Values returns a defensive copy of the active filters in order.
func (s *Store) Values() []any {
	out := make([]any, len(s.values))
	copy(out, s.values)
	return out
}

// Current returns the single active filter if there is exactly one, the
// ordered copy if there are several, and nil if there are none.
func (s *Store) Current() any {
	switch len(s.values) {
	case 0:
		return nil
	case 1:
		return s.values[0]
	default:
		return s.Values()
	}
}

// Predicate builds the predicate to push onto the chart's dimension, or
// nil when no filters are active.
func (s *Store) Predicate() datacube.Predicate {
	if len(s.values) == 0 {
		return nil
	}

	values := s.Values()

	if s.mode.ranged() {
		return func(key any) bool {
			k, ok := toFloat(key)
			if !ok {
				return false
			}
			for _, v := range values {
				low, high, ok := endpoints(v)
				if ok && (Ranged{Low: low, High: high}).Contains(k) {
					return true
				}
			}
			return false
		}
	}

	return func(key any) bool {
		for _, v := range values {
			if Equal(key, v) {
				return true
			}
		}
		return false
	}
}

// validate rejects values that are malformed for the store's mode.
func (s *Store) validate(v any) error {
	if !s.mode.ranged() {
		return nil
	}

	low, high, ok := endpoints(v)
	if !ok {
		return &charterrors.InvalidFilterError{
			Value:  v,
			Reason: "not a range-shaped value",
		}
	}
	if _, err := NewRanged(low, high); err != nil {
		return err
	}
	return nil
}

func (s *Store) indexOf(v any) int {
	for i, existing := range s.values {
		if Equal(existing, v) {
			return i
		}
	}
	return -1
}
