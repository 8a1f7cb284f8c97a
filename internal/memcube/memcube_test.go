package memcube_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartlink/chartlink/internal/memcube"
	"github.com/chartlink/chartlink/pkg/datacube"
)

func stateOf(rec memcube.Record) any { return rec["state"] }

func yearOf(rec memcube.Record) any { return rec["year"] }

func amountOf(rec memcube.Record) float64 {
	v, _ := rec["amount"].(float64)
	return v
}

func newTestCube() *memcube.Cube {
	cube := memcube.New()
	cube.Add(
		memcube.Record{"state": "CA", "year": float64(2023), "amount": 10.0},
		memcube.Record{"state": "CA", "year": float64(2024), "amount": 20.0},
		memcube.Record{"state": "NY", "year": float64(2023), "amount": 5.0},
		memcube.Record{"state": "TX", "year": float64(2024), "amount": 7.0},
	)
	return cube
}

func TestGroupSumBinsByKeyInSortedOrder(t *testing.T) {
	cube := newTestCube()
	states := cube.Dimension(stateOf)

	rows := states.GroupSum(amountOf).All()

	assert.Equal(t, []datacube.Row{
		{Key: "CA", Value: 30},
		{Key: "NY", Value: 5},
		{Key: "TX", Value: 7},
	}, rows)
}

func TestOwnFilterIsExcludedFromOwnGroup(t *testing.T) {
	cube := newTestCube()
	states := cube.Dimension(stateOf)
	group := states.GroupSum(amountOf)

	states.Filter(func(key any) bool { return key == "CA" })

	// The state group still shows every state.
	assert.Len(t, group.All(), 3)
}

func TestFilterAppliesToOtherGroups(t *testing.T) {
	cube := newTestCube()
	states := cube.Dimension(stateOf)
	years := cube.Dimension(yearOf)
	byYear := years.GroupSum(amountOf)

	states.Filter(func(key any) bool { return key == "CA" })

	assert.Equal(t, []datacube.Row{
		{Key: float64(2023), Value: 10},
		{Key: float64(2024), Value: 20},
	}, byYear.All())
}

func TestClearingAFilterRestoresAllRows(t *testing.T) {
	cube := newTestCube()
	states := cube.Dimension(stateOf)
	years := cube.Dimension(yearOf)
	byYear := years.GroupSum(amountOf)

	states.Filter(func(key any) bool { return key == "NY" })
	states.Filter(nil)

	assert.Equal(t, []datacube.Row{
		{Key: float64(2023), Value: 15},
		{Key: float64(2024), Value: 27},
	}, byYear.All())
}

func TestSumAllAppliesEveryFilter(t *testing.T) {
	cube := newTestCube()
	states := cube.Dimension(stateOf)
	years := cube.Dimension(yearOf)
	total := cube.SumAll(amountOf)

	assert.Equal(t, 42.0, total.Value())

	states.Filter(func(key any) bool { return key == "CA" })
	assert.Equal(t, 30.0, total.Value())

	years.Filter(func(key any) bool { return key == float64(2024) })
	assert.Equal(t, 20.0, total.Value())
}

func TestLoadJSONLines(t *testing.T) {
	input := strings.Join([]string{
		`{"state": "CA", "amount": 10}`,
		``,
		`{"state": "NY", "amount": NaN}`,
	}, "\n")

	records, err := memcube.LoadJSONLines(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "CA", records[0]["state"])

	nan, ok := records[1]["amount"].(float64)
	require.True(t, ok)
	assert.True(t, math.IsNaN(nan))
}

func TestLoadJSONLinesRejectsMalformedInput(t *testing.T) {
	_, err := memcube.LoadJSONLines(strings.NewReader(`{"state":`))
	assert.Error(t, err)
}
