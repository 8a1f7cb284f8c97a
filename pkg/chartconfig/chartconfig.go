// Package chartconfig loads chart defaults from a YAML file, so an
// application can declare its dashboard layout (groups, filter modes,
// palettes, minimum sizes) instead of hardcoding it.
package chartconfig

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/chartlink/chartlink/pkg/chart"
	"github.com/chartlink/chartlink/pkg/filters"
)

// Margins mirrors chart.Margins in YAML.
type Margins struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// ChartDefaults is the configurable subset of chart.Params.
type ChartDefaults struct {
	// Group is the coordination group the chart joins.
	Group string `yaml:"group"`

	// FilterMode is "exact", "ranged" or "ranged-set". Empty means
	// exact.
	FilterMode string `yaml:"filter_mode"`

	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`

	Margins Margins `yaml:"margins"`

	// Palette lists colors assigned to keys round-robin.
	Palette []string `yaml:"palette"`
}

// Config maps chart anchor IDs to their defaults.
type Config struct {
	Charts map[string]ChartDefaults `yaml:"charts"`
}

// Load reads the YAML file at path.
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("chartconfig: reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("chartconfig: parsing %s: %w", path, err)
	}

	for id, defaults := range cfg.Charts {
		if _, err := defaults.Mode(); err != nil {
			return nil, fmt.Errorf("chartconfig: chart %q: %w", id, err)
		}
	}
	return cfg, nil
}

// Defaults returns the defaults for a chart ID, falling back to the
// zero value when the file does not mention it.
func (c *Config) Defaults(id string) ChartDefaults {
	if c == nil {
		return ChartDefaults{}
	}
	return c.Charts[id]
}

// Mode parses the filter-mode name.
func (d ChartDefaults) Mode() (filters.Mode, error) {
	switch d.FilterMode {
	case "", "exact":
		return filters.ModeExact, nil
	case "ranged":
		return filters.ModeRanged, nil
	case "ranged-set":
		return filters.ModeRangedSet, nil
	}
	return 0, fmt.Errorf("unknown filter mode %q", d.FilterMode)
}

// Apply copies the defaults onto chart params, leaving unset fields
// alone.
func (d ChartDefaults) Apply(params *chart.Params) error {
	mode, err := d.Mode()
	if err != nil {
		return err
	}
	params.FilterMode = mode

	if d.Group != "" {
		params.GroupName = d.Group
	}
	if d.MinWidth > 0 {
		params.MinWidth = d.MinWidth
	}
	if d.MinHeight > 0 {
		params.MinHeight = d.MinHeight
	}
	if d.Margins != (Margins{}) {
		params.Margins = chart.Margins(d.Margins)
	}
	if len(d.Palette) > 0 {
		params.Palette = chart.NewPalette(d.Palette)
	}
	return nil
}
