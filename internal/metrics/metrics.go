// Package metrics provides the Prometheus metrics exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus metrics and the registry they live in.
type Metrics struct {
	Registry *prometheus.Registry

	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// ItemChangesTotal counts successful writes per list ("inventory", "shopping")
	// and operation ("create", "update", "delete").
	ItemChangesTotal *prometheus.CounterVec
}

// New creates a registry with Go runtime and process collectors plus the
// service metrics. Each call returns an independent registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		ItemChangesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_item_changes_total",
				Help: "Total number of list items created, updated or deleted",
			},
			[]string{"list", "operation"},
		),
	}
}

// RecordItemChange increments ItemChangesTotal. Safe on a nil *Metrics.
func (m *Metrics) RecordItemChange(list, operation string) {
	if m == nil {
		return
	}
	m.ItemChangesTotal.WithLabelValues(list, operation).Inc()
}
