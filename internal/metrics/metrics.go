// Package metrics provides Prometheus metrics for the monitor pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the monitor.
type Metrics struct {
	RowsFetched        prometheus.Counter
	RowsRejected       prometheus.Counter
	RunsTotal          *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	RenderModeTotal    *prometheus.CounterVec
	GroupCount         prometheus.Gauge
	RunDuration        prometheus.Histogram

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RowsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "monitor_rows_fetched_total",
			Help: "Total warehouse rows fetched across all runs.",
		}),
		RowsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "monitor_rows_rejected_total",
			Help: "Total warehouse rows that failed normalization.",
		}),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monitor_runs_total",
				Help: "Total monitor runs by status.",
			},
			[]string{"status"},
		),
		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monitor_notifications_total",
				Help: "Total notification deliveries by status.",
			},
			[]string{"status"},
		),
		RenderModeTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monitor_render_mode_total",
				Help: "Runs by selected rendering mode.",
			},
			[]string{"mode"},
		),
		GroupCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "monitor_last_run_groups",
			Help: "Display group count of the most recent run.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "monitor_run_duration_seconds",
			Help:    "End-to-end monitor run duration.",
			Buckets: prometheus.DefBuckets,
		}),
		registry: reg,
	}

	reg.MustRegister(m.RowsFetched)
	reg.MustRegister(m.RowsRejected)
	reg.MustRegister(m.RunsTotal)
	reg.MustRegister(m.NotificationsTotal)
	reg.MustRegister(m.RenderModeTotal)
	reg.MustRegister(m.GroupCount)
	reg.MustRegister(m.RunDuration)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRun increments the run counter.
func (m *Metrics) RecordRun(status string) {
	m.RunsTotal.WithLabelValues(status).Inc()
}

// RecordNotification increments the delivery counter.
func (m *Metrics) RecordNotification(status string) {
	m.NotificationsTotal.WithLabelValues(status).Inc()
}

// RecordMode increments the mode counter.
func (m *Metrics) RecordMode(mode string) {
	m.RenderModeTotal.WithLabelValues(mode).Inc()
}
