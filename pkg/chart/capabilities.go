package chart

import (
	"fmt"
	"sync"
)

// Layout defaults, applied when Params leaves them unset.
const (
	DefaultMinWidth  = 200
	DefaultMinHeight = 200
)

// Margins is the space reserved around a chart's plot area.
type Margins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// computeSize re-reads the anchor and clamps to the chart's minimums.
func (c *Chart) computeSize() {
	w, h := c.anchor.Size()
	if w < c.minWidth {
		w = c.minWidth
	}
	if h < c.minHeight {
		h = c.minHeight
	}

	c.mu.Lock()
	c.width, c.height = w, h
	c.mu.Unlock()
}

// Width returns the chart width computed at the last render.
func (c *Chart) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

// Height returns the chart height computed at the last render.
func (c *Chart) Height() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

// Margins returns the chart's margins.
func (c *Chart) Margins() Margins { return c.margins }

// EffectiveWidth is the plot-area width after margins.
func (c *Chart) EffectiveWidth() int {
	return c.Width() - c.margins.Left - c.margins.Right
}

// EffectiveHeight is the plot-area height after margins.
func (c *Chart) EffectiveHeight() int {
	return c.Height() - c.margins.Top - c.margins.Bottom
}

// defaultPalette is a categorical scheme with enough contrast for
// adjacent keys.
var defaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Palette assigns stable colors to keys: a key keeps its color for the
// lifetime of the palette, and new keys take the next color round-robin.
// It is a composable capability, shareable between charts that should
// color the same keys alike.
type Palette struct {
	mu       sync.Mutex
	colors   []string
	assigned map[string]string
	next     int
}

// NewPalette creates a palette over the given colors, or over the
// default categorical scheme when colors is empty.
func NewPalette(colors []string) *Palette {
	if len(colors) == 0 {
		colors = defaultPalette
	}
	return &Palette{
		colors:   colors,
		assigned: make(map[string]string),
	}
}

// Color returns the key's color, assigning one on first sight.
func (p *Palette) Color(key any) string {
	name := fmt.Sprint(key)

	p.mu.Lock()
	defer p.mu.Unlock()

	if color, ok := p.assigned[name]; ok {
		return color
	}
	color := p.colors[p.next%len(p.colors)]
	p.assigned[name] = color
	p.next++
	return color
}

// Palette returns the chart's color capability.
func (c *Chart) Palette() *Palette { return c.palette }

// LegendItem is one visual legend entry derived from a rendered
// category.
type LegendItem struct {
	Name  string
	Color string
}

// LegendItems derives legend entries from the rows pulled by the most
// recent render or redraw, in row order.
func (c *Chart) LegendItems() []LegendItem {
	rows := c.Data()

	items := make([]LegendItem, 0, len(rows))
	for _, row := range rows {
		name := fmt.Sprint(row.Key)
		items = append(items, LegendItem{
			Name:  name,
			Color: c.palette.Color(row.Key),
		})
	}
	return items
}
