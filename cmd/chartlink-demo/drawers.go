package main

import (
	"fmt"
	"sync"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/chartlink/chartlink/pkg/chart"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	focusedBoxStyle = boxStyle.
			BorderForeground(lipgloss.Color("212"))

	filteredMark = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Render("●")
)

// paneAnchor is a terminal pane implementing chart.Anchor. The model
// resizes it on window-size messages; the engine only ever reads it.
type paneAnchor struct {
	mu     sync.Mutex
	id     string
	width  int
	height int
}

func (a *paneAnchor) ID() string { return a.id }

func (a *paneAnchor) Size() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.width, a.height
}

func (a *paneAnchor) resize(w, h int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width, a.height = w, h
}

// barDrawer renders a chart's rows as a terminal bar chart. It is the
// demo's draw collaborator: the engine decides when it runs, it only
// turns rows into cells.
type barDrawer struct {
	mu sync.Mutex

	title    string
	selected int
	view     string
}

var _ chart.Drawer = &barDrawer{}

func (d *barDrawer) DoRender(c *chart.Chart) error { return d.DoRedraw(c) }

func (d *barDrawer) DoRedraw(c *chart.Chart) error {
	rows := c.Data()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.selected >= len(rows) {
		d.selected = 0
	}

	width := c.EffectiveWidth()
	height := c.EffectiveHeight()
	bc := barchart.New(width, height)

	for i, row := range rows {
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Palette().Color(row.Key)))
		if i == d.selected {
			style = style.Bold(true)
		}

		label := fmt.Sprint(row.Key)
		if c.HasFilter(row.Key) {
			label += "*"
		}

		bc.Push(barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: label, Value: row.Value, Style: style},
			},
		})
	}

	bc.Draw()
	d.view = titleStyle.Render(d.title) + "\n" + bc.View()
	return nil
}

// View returns the most recently drawn frame.
func (d *barDrawer) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// moveSelection shifts the highlighted bar by delta, clamped to the
// chart's current rows.
func (d *barDrawer) moveSelection(delta, rowCount int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if rowCount == 0 {
		d.selected = 0
		return
	}
	d.selected = (d.selected + delta + rowCount) % rowCount
}

// selectedIndex returns the highlighted bar.
func (d *barDrawer) selectedIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// numberDrawer renders a chart's scalar aggregate as a number display.
type numberDrawer struct {
	mu sync.Mutex

	title string
	view  string
}

var _ chart.Drawer = &numberDrawer{}

func (d *numberDrawer) DoRender(c *chart.Chart) error { return d.DoRedraw(c) }

func (d *numberDrawer) DoRedraw(c *chart.Chart) error {
	value := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("86")).
		Render(fmt.Sprintf("%.1f", c.Value()))

	d.mu.Lock()
	d.view = titleStyle.Render(d.title) + "\n" + value
	d.mu.Unlock()
	return nil
}

func (d *numberDrawer) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}
