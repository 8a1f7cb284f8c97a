// Package chartmetrics counts render and redraw activity for Prometheus.
//
// A nil *Metrics is a no-op, so charts and registries never need to check
// whether metrics are configured.
package chartmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus counters.
type Metrics struct {
	renders      *prometheus.CounterVec
	redraws      *prometheus.CounterVec
	drawFailures *prometheus.CounterVec
	broadcasts   *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartlink",
			Name:      "renders_total",
			Help:      "Completed chart renders.",
		}, []string{"chart"}),
		redraws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartlink",
			Name:      "redraws_total",
			Help:      "Completed chart redraws.",
		}, []string{"chart"}),
		drawFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartlink",
			Name:      "draw_failures_total",
			Help:      "Failures raised by draw collaborators.",
		}, []string{"chart", "phase"}),
		broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartlink",
			Name:      "broadcasts_total",
			Help:      "Group-wide render and redraw broadcasts.",
		}, []string{"group", "kind"}),
	}

	reg.MustRegister(m.renders, m.redraws, m.drawFailures, m.broadcasts)
	return m
}

// CountRender records a completed render for the chart.
func (m *Metrics) CountRender(chartID string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(chartID).Inc()
}

// CountRedraw records a completed redraw for the chart.
func (m *Metrics) CountRedraw(chartID string) {
	if m == nil {
		return
	}
	m.redraws.WithLabelValues(chartID).Inc()
}

// CountDrawFailure records a draw collaborator failure. Phase is "render"
// or "redraw".
func (m *Metrics) CountDrawFailure(chartID, phase string) {
	if m == nil {
		return
	}
	m.drawFailures.WithLabelValues(chartID, phase).Inc()
}

// CountBroadcast records a group broadcast. Kind is "render" or "redraw".
func (m *Metrics) CountBroadcast(group, kind string) {
	if m == nil {
		return
	}
	m.broadcasts.WithLabelValues(group, kind).Inc()
}
