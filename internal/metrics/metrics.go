package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus registry and the collectors
// the core reports into. A nil *Metrics is valid and makes every
// method a no-op, so callers never branch on whether metrics are
// enabled.
type Metrics struct {
	registry *prometheus.Registry

	analysesTotal     *prometheus.CounterVec
	errorsTotal       *prometheus.CounterVec
	inferenceDuration prometheus.Histogram
	requestDuration   *prometheus.HistogramVec
}

// New creates a Metrics instance with its own isolated registry. All
// metrics carry a constant service label.
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": serviceName},
		registry,
	)

	wrapped.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{registry: registry}

	m.analysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analyses_total",
		Help: "Completed analyses by verdict label",
	}, []string{"label"})

	m.errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analysis_errors_total",
		Help: "Failed analyses by pipeline stage",
	}, []string{"stage"})

	m.inferenceDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inference_duration_seconds",
		Help:    "End-to-end embed plus classify duration",
		Buckets: prometheus.DefBuckets,
	})

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "request_duration_seconds",
		Help:    "HTTP request duration by route and status",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})

	wrapped.MustRegister(m.analysesTotal, m.errorsTotal, m.inferenceDuration, m.requestDuration)
	return m
}

// CountAnalysis records one completed analysis with its label.
func (m *Metrics) CountAnalysis(label string) {
	if m == nil {
		return
	}
	m.analysesTotal.WithLabelValues(label).Inc()
}

// CountError records one failed analysis at the given stage.
func (m *Metrics) CountError(stage string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(stage).Inc()
}

// ObserveInference records the model-invocation duration.
func (m *Metrics) ObserveInference(d time.Duration) {
	if m == nil {
		return
	}
	m.inferenceDuration.Observe(d.Seconds())
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

// Handler returns the scrape endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
