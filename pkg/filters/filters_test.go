package filters_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartlink/chartlink/pkg/charterrors"
	"github.com/chartlink/chartlink/pkg/filters"
)

func TestNewRangedRejectsReversedEndpoints(t *testing.T) {
	_, err := filters.NewRanged(20, 10)

	var invalidFilter *charterrors.InvalidFilterError
	require.ErrorAs(t, err, &invalidFilter)
}

func TestNewRangedRejectsNaN(t *testing.T) {
	_, err := filters.NewRanged(math.NaN(), 10)

	var invalidFilter *charterrors.InvalidFilterError
	require.ErrorAs(t, err, &invalidFilter)
}

func TestRangedContainsIsHalfOpen(t *testing.T) {
	r, err := filters.NewRanged(10, 20)
	require.NoError(t, err)

	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(19.99))
	assert.False(t, r.Contains(20))
	assert.False(t, r.Contains(9.99))
}

func TestEqualMatchesRangesAcrossRepresentations(t *testing.T) {
	typed, err := filters.NewRanged(10, 20)
	require.NoError(t, err)

	assert.True(t, filters.Equal(typed, filters.Ranged{Low: 10, High: 20}))
	assert.True(t, filters.Equal(typed, [2]float64{10, 20}))
	assert.True(t, filters.Equal(typed, []float64{10, 20}))
	assert.True(t, filters.Equal(typed, []any{10, 20.0}))
	assert.False(t, filters.Equal(typed, [2]float64{10, 21}))
}

func TestEqualDistinguishesRangesFromScalars(t *testing.T) {
	assert.False(t, filters.Equal(filters.Ranged{Low: 1, High: 2}, "CA"))
	assert.True(t, filters.Equal("CA", "CA"))
	assert.False(t, filters.Equal("CA", "NY"))
}

func TestToggleIsIdempotentForExactFilters(t *testing.T) {
	store := filters.NewStore(filters.ModeExact)

	require.NoError(t, store.Toggle("CA"))
	assert.Equal(t, []any{"CA"}, store.Values())

	require.NoError(t, store.Toggle("CA"))
	assert.Empty(t, store.Values())
	assert.False(t, store.Has())
}

func TestToggleKeepsInsertionOrder(t *testing.T) {
	store := filters.NewStore(filters.ModeExact)

	require.NoError(t, store.Toggle("CA"))
	require.NoError(t, store.Toggle("NY"))
	require.NoError(t, store.Toggle("TX"))
	require.NoError(t, store.Toggle("NY"))

	assert.Equal(t, []any{"CA", "TX"}, store.Values())
}

func TestToggleReplacesInRangedMode(t *testing.T) {
	store := filters.NewStore(filters.ModeRanged)

	require.NoError(t, store.Toggle(filters.Ranged{Low: 10, High: 20}))
	require.NoError(t, store.Toggle(filters.Ranged{Low: 10, High: 20}))

	// An equal range replaces rather than toggles.
	assert.Equal(t,
		[]any{filters.Ranged{Low: 10, High: 20}},
		store.Values())

	require.NoError(t, store.Toggle(filters.Ranged{Low: 30, High: 40}))
	assert.Equal(t,
		[]any{filters.Ranged{Low: 30, High: 40}},
		store.Values())
}

func TestToggleRejectsMalformedRangeWithoutMutating(t *testing.T) {
	store := filters.NewStore(filters.ModeRanged)
	require.NoError(t, store.Toggle(filters.Ranged{Low: 1, High: 2}))

	err := store.Toggle("not a range")

	var invalidFilter *charterrors.InvalidFilterError
	require.ErrorAs(t, err, &invalidFilter)
	assert.Equal(t, []any{filters.Ranged{Low: 1, High: 2}}, store.Values())
}

func TestReplaceClearsThenApplies(t *testing.T) {
	store := filters.NewStore(filters.ModeExact)
	require.NoError(t, store.Toggle("CA"))

	require.NoError(t, store.Replace("NY", "TX"))

	assert.Equal(t, []any{"NY", "TX"}, store.Values())
}

func TestReplaceValidatesBeforeMutating(t *testing.T) {
	store := filters.NewStore(filters.ModeRangedSet)
	require.NoError(t, store.Toggle([2]float64{1, 2}))

	err := store.Replace([2]float64{3, 4}, [2]float64{9, 5})

	var invalidFilter *charterrors.InvalidFilterError
	require.ErrorAs(t, err, &invalidFilter)
	assert.Equal(t, []any{[2]float64{1, 2}}, store.Values())
}

func TestClearEmptiesTheStore(t *testing.T) {
	store := filters.NewStore(filters.ModeExact)
	require.NoError(t, store.Toggle("CA"))

	store.Clear()

	assert.False(t, store.Has())
	assert.Empty(t, store.Values())
	assert.Nil(t, store.Current())
}

func TestHasValueComparesSingleFilterByEquality(t *testing.T) {
	store := filters.NewStore(filters.ModeRanged)
	require.NoError(t, store.Toggle(filters.Ranged{Low: 10, High: 20}))

	assert.True(t, store.HasValue([2]float64{10, 20}))
	assert.False(t, store.HasValue([2]float64{10, 21}))
}

func TestCurrentCollapsesBySize(t *testing.T) {
	store := filters.NewStore(filters.ModeExact)
	assert.Nil(t, store.Current())

	require.NoError(t, store.Toggle("CA"))
	assert.Equal(t, "CA", store.Current())

	require.NoError(t, store.Toggle("NY"))
	assert.Equal(t, []any{"CA", "NY"}, store.Current())
}

func TestValuesReturnsACopy(t *testing.T) {
	store := filters.NewStore(filters.ModeExact)
	require.NoError(t, store.Toggle("CA"))

	values := store.Values()
	values[0] = "mutated"

	assert.Equal(t, []any{"CA"}, store.Values())
}

func TestPredicateExactMembership(t *testing.T) {
	store := filters.NewStore(filters.ModeExact)
	require.NoError(t, store.Toggle("CA"))
	require.NoError(t, store.Toggle("NY"))

	p := store.Predicate()
	require.NotNil(t, p)

	assert.True(t, p("CA"))
	assert.True(t, p("NY"))
	assert.False(t, p("TX"))
}

func TestPredicateRangedContainment(t *testing.T) {
	store := filters.NewStore(filters.ModeRangedSet)
	require.NoError(t, store.Replace(
		filters.Ranged{Low: 0, High: 10},
		filters.Ranged{Low: 50, High: 60},
	))

	p := store.Predicate()
	require.NotNil(t, p)

	assert.True(t, p(5))
	assert.True(t, p(55.5))
	assert.False(t, p(10))
	assert.False(t, p(20))
	assert.False(t, p("not numeric"))
}

func TestPredicateNilWhenEmpty(t *testing.T) {
	store := filters.NewStore(filters.ModeExact)
	assert.Nil(t, store.Predicate())
}
