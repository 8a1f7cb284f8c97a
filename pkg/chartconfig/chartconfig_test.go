package chartconfig_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartlink/chartlink/pkg/chart"
	"github.com/chartlink/chartlink/pkg/chartconfig"
	"github.com/chartlink/chartlink/pkg/filters"
)

const testConfig = `
charts:
  by-state:
    group: sales
    filter_mode: exact
    min_width: 320
    margins: {top: 10, right: 20, bottom: 30, left: 40}
    palette: ["#111111", "#222222"]
  by-year:
    group: sales
    filter_mode: ranged
`

func writeConfig(t *testing.T, content string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t,
		afero.WriteFile(fsys, "charts.yaml", []byte(content), 0o644))
	return fsys
}

func TestLoadParsesDefaults(t *testing.T) {
	cfg, err := chartconfig.Load(writeConfig(t, testConfig), "charts.yaml")
	require.NoError(t, err)

	byState := cfg.Defaults("by-state")
	assert.Equal(t, "sales", byState.Group)
	assert.Equal(t, 320, byState.MinWidth)
	assert.Equal(t, chartconfig.Margins{Top: 10, Right: 20, Bottom: 30, Left: 40},
		byState.Margins)

	mode, err := cfg.Defaults("by-year").Mode()
	require.NoError(t, err)
	assert.Equal(t, filters.ModeRanged, mode)
}

func TestLoadRejectsUnknownFilterMode(t *testing.T) {
	fsys := writeConfig(t, "charts:\n  c1:\n    filter_mode: fuzzy\n")

	_, err := chartconfig.Load(fsys, "charts.yaml")

	assert.ErrorContains(t, err, "fuzzy")
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := chartconfig.Load(afero.NewMemMapFs(), "nope.yaml")
	assert.Error(t, err)
}

func TestDefaultsForUnknownChartAreZero(t *testing.T) {
	cfg, err := chartconfig.Load(writeConfig(t, testConfig), "charts.yaml")
	require.NoError(t, err)

	defaults := cfg.Defaults("unknown")

	mode, err := defaults.Mode()
	require.NoError(t, err)
	assert.Equal(t, filters.ModeExact, mode)
}

func TestApplyCopiesOntoParams(t *testing.T) {
	cfg, err := chartconfig.Load(writeConfig(t, testConfig), "charts.yaml")
	require.NoError(t, err)

	params := chart.Params{GroupName: "original"}
	require.NoError(t, cfg.Defaults("by-state").Apply(&params))

	assert.Equal(t, "sales", params.GroupName)
	assert.Equal(t, 320, params.MinWidth)
	assert.Equal(t, chart.Margins{Top: 10, Right: 20, Bottom: 30, Left: 40},
		params.Margins)
	assert.NotNil(t, params.Palette)

	// Fields the file does not set stay as they were.
	assert.Zero(t, params.MinHeight)
}
