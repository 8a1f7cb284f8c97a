// Package filters holds the filter values a chart keeps as a mirror of the
// predicate it pushed onto its data-cube dimension.
//
// The mirror exists so UI code can display active filters and so toggle,
// replace and clear are idempotent without consulting the cube. Membership
// is decided by value equality, not insertion order, and equality
// special-cases range-shaped values: two ranges are equal iff both
// endpoints match.
package filters

import (
	"math"
	"reflect"

	"github.com/chartlink/chartlink/pkg/charterrors"
)

// Mode tags how a chart interprets its filter values.
type Mode int

const (
	// ModeExact filters match keys by equality and toggle on reselection.
	ModeExact Mode = iota

	// ModeRanged filters hold a single half-open interval. Selecting a
	// new range replaces the old one; ranges are never toggled.
	ModeRanged

	// ModeRangedSet filters hold an ordered set of intervals that is
	// replaced as a unit.
	ModeRangedSet
)

func (m Mode) String() string {
	switch m {
	case ModeRanged:
		return "ranged"
	case ModeRangedSet:
		return "ranged-set"
	default:
		return "exact"
	}
}

// ranged returns whether values in this mode must be range-shaped.
func (m Mode) ranged() bool {
	return m == ModeRanged || m == ModeRangedSet
}

// Ranged is a half-open interval [Low, High) over numeric keys.
type Ranged struct {
	Low  float64
	High float64
}

// NewRanged builds a Ranged filter, rejecting reversed or NaN endpoints.
func NewRanged(low, high float64) (Ranged, error) {
	if math.IsNaN(low) || math.IsNaN(high) {
		return Ranged{}, &charterrors.InvalidFilterError{
			Value:  []float64{low, high},
			Reason: "range endpoint is NaN",
		}
	}
	if low > high {
		return Ranged{}, &charterrors.InvalidFilterError{
			Value:  []float64{low, high},
			Reason: "range endpoints out of order",
		}
	}
	return Ranged{Low: low, High: high}, nil
}

// Contains reports whether a numeric key falls inside the interval.
func (r Ranged) Contains(key float64) bool {
	return key >= r.Low && key < r.High
}

// endpoints extracts the two endpoints of a range-shaped value: a typed
// Ranged, a [2]float64, or a two-element numeric slice.
func endpoints(v any) (low, high float64, ok bool) {
	switch x := v.(type) {
	case Ranged:
		return x.Low, x.High, true
	case *Ranged:
		if x == nil {
			return 0, 0, false
		}
		return x.Low, x.High, true
	case [2]float64:
		return x[0], x[1], true
	case []float64:
		if len(x) != 2 {
			return 0, 0, false
		}
		return x[0], x[1], true
	case []any:
		if len(x) != 2 {
			return 0, 0, false
		}
		lo, okLo := toFloat(x[0])
		hi, okHi := toFloat(x[1])
		if !okLo || !okHi {
			return 0, 0, false
		}
		return lo, hi, true
	}
	return 0, 0, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	}
	return 0, false
}

// Equal compares two filter values. Range-shaped values of any supported
// representation are equal iff both endpoints match; everything else is
// compared with reflect.DeepEqual.
func Equal(a, b any) bool {
	aLow, aHigh, aOK := endpoints(a)
	bLow, bHigh, bOK := endpoints(b)
	if aOK && bOK {
		return aLow == bLow && aHigh == bHigh
	}
	if aOK != bOK {
		return false
	}
	return reflect.DeepEqual(a, b)
}
