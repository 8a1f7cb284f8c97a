// Package charttest provides fake collaborators for chart tests.
package charttest

import (
	"sync"

	"github.com/chartlink/chartlink/pkg/chart"
	"github.com/chartlink/chartlink/pkg/datacube"
)

// FakeDimension records the predicates pushed onto it.
type FakeDimension struct {
	mu sync.Mutex

	predicate   datacube.Predicate
	filterCalls int
}

var _ datacube.Dimension = &FakeDimension{}

func (d *FakeDimension) Filter(p datacube.Predicate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.predicate = p
	d.filterCalls++
}

// Predicate returns the most recently pushed predicate, nil if the
// filter was cleared or never set.
func (d *FakeDimension) Predicate() datacube.Predicate {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.predicate
}

// FilterCalls returns how many times Filter was invoked.
func (d *FakeDimension) FilterCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.filterCalls
}

// FakeGroup serves fixed rows and counts how often they were pulled.
type FakeGroup struct {
	mu sync.Mutex

	// Rows is returned by All.
	Rows []datacube.Row

	allCalls int
}

var _ datacube.Group = &FakeGroup{}

func (g *FakeGroup) All() []datacube.Row {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.allCalls++

	out := make([]datacube.Row, len(g.Rows))
	copy(out, g.Rows)
	return out
}

// AllCalls returns how many times All was invoked.
func (g *FakeGroup) AllCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.allCalls
}

// FakeValueGroup serves a fixed scalar aggregate.
type FakeValueGroup struct {
	Aggregate float64
}

var _ datacube.ValueGroup = &FakeValueGroup{}

func (g *FakeValueGroup) Value() float64 { return g.Aggregate }

// RecordingDrawer counts draw calls and can fail or call back on demand.
type RecordingDrawer struct {
	mu sync.Mutex

	renderCalls int
	redrawCalls int

	// RenderErr and RedrawErr are returned by the respective calls.
	RenderErr error
	RedrawErr error

	// OnRedraw, if set, runs inside DoRedraw before it returns. Use it
	// to provoke re-entrancy.
	OnRedraw func(c *chart.Chart)
}

var _ chart.Drawer = &RecordingDrawer{}

func (d *RecordingDrawer) DoRender(c *chart.Chart) error {
	d.mu.Lock()
	d.renderCalls++
	d.mu.Unlock()
	return d.RenderErr
}

func (d *RecordingDrawer) DoRedraw(c *chart.Chart) error {
	d.mu.Lock()
	d.redrawCalls++
	callback := d.OnRedraw
	d.mu.Unlock()

	if callback != nil {
		callback(c)
	}
	return d.RedrawErr
}

// RenderCalls returns how many times DoRender ran.
func (d *RecordingDrawer) RenderCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renderCalls
}

// RedrawCalls returns how many times DoRedraw ran.
func (d *RecordingDrawer) RedrawCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.redrawCalls
}
