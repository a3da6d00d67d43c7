package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "vendor_insights"

// Metrics holds the server's Prometheus collectors. Each server owns its registry so
// several servers (and tests) can run in one process.
type Metrics struct {
	registry *prometheus.Registry

	// requests counts served requests.
	// Labels: route (mux pattern), method, status
	requests *prometheus.CounterVec

	// viewBuild measures how long a view takes to compute on a cache miss.
	// Labels: view
	viewBuild *prometheus.HistogramVec

	faqCreated prometheus.Counter
}

// NewMetrics registers the server collectors plus the Go and process collectors on a
// fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		viewBuild: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "view_build_seconds",
			Help:      "Time to build a dashboard view on a cache miss",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"view"}),
		faqCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "faq_items_created_total",
			Help:      "Total FAQ items created",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeView(view string, start time.Time) {
	m.viewBuild.WithLabelValues(view).Observe(time.Since(start).Seconds())
}
