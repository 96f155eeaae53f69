package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ratedesk"

// Metrics holds the rate desk collectors on their own registry
type Metrics struct {
	registry *prometheus.Registry

	ViewsComputed       *prometheus.CounterVec
	ViewFailures        *prometheus.CounterVec
	AssumptionFallbacks prometheus.Counter
	ViewDuration        prometheus.Histogram
	InventoryUnits      prometheus.Gauge
	RequestsProcessed   *prometheus.CounterVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ViewsComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_computed_total",
			Help:      "Rate desk views computed, by scenario slug",
		}, []string{"scenario"}),
		ViewFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_failures_total",
			Help:      "Rate desk view computations aborted, by stage",
		}, []string{"stage"}),
		AssumptionFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assumption_fallbacks_total",
			Help:      "Views priced with default assumptions because none were stored",
		}),
		ViewDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_duration_seconds",
			Help:      "Time to assemble a rate desk view",
			Buckets:   prometheus.DefBuckets,
		}),
		InventoryUnits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_inventory_units",
			Help:      "Active inventory units priced in the latest view",
		}),
		RequestsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_processed_total",
			Help:      "API requests processed, by route and status",
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		m.ViewsComputed,
		m.ViewFailures,
		m.AssumptionFallbacks,
		m.ViewDuration,
		m.InventoryUnits,
		m.RequestsProcessed,
	)
	return m
}

// Gatherer returns the registry for export
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
