package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chartlink/chartlink/internal/memcube"
	"github.com/chartlink/chartlink/internal/observability"
	"github.com/chartlink/chartlink/internal/taskqueue"
	"github.com/chartlink/chartlink/pkg/chart"
	"github.com/chartlink/chartlink/pkg/chartconfig"
	"github.com/chartlink/chartlink/pkg/registry"
)

const demoGroup = "demo"

// feedMsg delivers one simulated record from the feed goroutine.
type feedMsg struct {
	record memcube.Record
}

type pane struct {
	chart  *chart.Chart
	anchor *paneAnchor
	drawer *barDrawer
}

// model wires the coordination engine into a bubbletea program. Each
// Update call is one turn: filter actions schedule group redraws on a
// manual queue, and the turn ends by draining it, so a burst of
// changes still produces a single redraw per chart.
type model struct {
	cube   *memcube.Cube
	reg    *registry.Registry
	queue  *taskqueue.Manual
	logger *observability.Logger

	panes   []pane
	total   *chart.Chart
	totalDr *numberDrawer

	focused int
	width   int
	height  int
	lastErr error
}

func newModel(
	cube *memcube.Cube,
	cfg *chartconfig.Config,
	logger *observability.Logger,
) (*model, error) {
	queue := taskqueue.NewManual()
	reg := registry.New(registry.Params{
		Queue:  queue,
		Logger: logger,
	})

	m := &model{
		cube:   cube,
		reg:    reg,
		queue:  queue,
		logger: logger,
	}

	stateDim := cube.Dimension(func(r memcube.Record) any { return r["state"] })
	yearDim := cube.Dimension(func(r memcube.Record) any { return r["year"] })
	amount := func(r memcube.Record) float64 {
		v, _ := r["amount"].(float64)
		return v
	}

	specs := []struct {
		id    string
		title string
		dim   *memcube.Dimension
	}{
		{"state-chart", "Amount by state", stateDim},
		{"year-chart", "Amount by year", yearDim},
	}
	for _, s := range specs {
		anchor := &paneAnchor{id: s.id}
		drawer := &barDrawer{title: s.title}
		params := chart.Params{
			Anchor:    anchor,
			Drawer:    drawer,
			Dimension: s.dim,
			Group:     s.dim.GroupSum(amount),
			Registry:  reg,
			GroupName: demoGroup,
			MinWidth:  20,
			MinHeight: 8,
			Logger:    logger,
		}
		if err := cfg.Defaults(s.id).Apply(&params); err != nil {
			return nil, err
		}
		c, err := chart.New(params)
		if err != nil {
			return nil, err
		}
		m.panes = append(m.panes, pane{chart: c, anchor: anchor, drawer: drawer})
	}

	totalAnchor := &paneAnchor{id: "total"}
	m.totalDr = &numberDrawer{title: "Total amount"}
	totalParams := chart.Params{
		Anchor:     totalAnchor,
		Drawer:     m.totalDr,
		ValueGroup: cube.SumAll(amount),
		Registry:   reg,
		GroupName:  demoGroup,
		MinWidth:   20,
		MinHeight:  4,
		Logger:     logger,
	}
	if err := cfg.Defaults("total").Apply(&totalParams); err != nil {
		return nil, err
	}
	total, err := chart.New(totalParams)
	if err != nil {
		return nil, err
	}
	m.total = total
	m.panes = append(m.panes, pane{chart: total, anchor: totalAnchor})

	return m, nil
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.lastErr = m.reg.RenderAll(demoGroup)

	case feedMsg:
		m.cube.Add(msg.record)
		m.lastErr = m.reg.RedrawAll(demoGroup)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.reg.Close()
			return m, tea.Quit
		case "tab":
			m.focused = (m.focused + 1) % (len(m.panes) - 1)
		case "left", "h":
			m.moveSelection(-1)
		case "right", "l":
			m.moveSelection(1)
		case "enter", " ":
			m.toggleSelected()
		case "c":
			m.clearFilters()
		}
	}

	// End of turn: run any redraws the filter controller scheduled.
	m.queue.Drain()
	return m, nil
}

func (m *model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var boxes []string
	for i, p := range m.panes {
		view := m.totalDr.View()
		if p.drawer != nil {
			view = p.drawer.View()
		}
		style := boxStyle
		if i == m.focused {
			style = focusedBoxStyle
		}
		boxes = append(boxes, style.Render(view))
	}

	help := "tab: focus  ←/→: select  enter: filter  c: clear  q: quit"
	status := m.statusLine()
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...) +
		"\n" + help + "\n" + status
}

func (m *model) statusLine() string {
	if m.lastErr != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Render("error: " + m.lastErr.Error())
	}
	for _, p := range m.panes {
		if p.chart.CurrentFilter() != nil {
			return filteredMark + " filters active"
		}
	}
	return ""
}

// layout splits the terminal into equal panes above a two-line footer.
func (m *model) layout() {
	if len(m.panes) == 0 {
		return
	}
	paneWidth := m.width/len(m.panes) - 4
	paneHeight := m.height - 6
	for _, p := range m.panes {
		p.anchor.resize(paneWidth, paneHeight)
	}
}

func (m *model) moveSelection(delta int) {
	p := m.panes[m.focused]
	if p.drawer == nil {
		return
	}
	p.drawer.moveSelection(delta, len(p.chart.Data()))
	m.lastErr = p.chart.Redraw()
}

// toggleSelected applies the focused chart's highlighted key as a
// filter. The chart redraws itself immediately; the rest of the group
// is picked up by the queue drain at the end of the turn.
func (m *model) toggleSelected() {
	p := m.panes[m.focused]
	if p.drawer == nil {
		return
	}
	rows := p.chart.Data()
	idx := p.drawer.selectedIndex()
	if idx >= len(rows) {
		return
	}
	m.lastErr = p.chart.HandleFilterSelection(rows[idx].Key)
}

func (m *model) clearFilters() {
	for _, p := range m.panes {
		if p.drawer == nil {
			continue
		}
		if err := p.chart.FilterAll(); err != nil {
			m.lastErr = err
			return
		}
	}
	m.panes[0].chart.RedrawGroup()
}
