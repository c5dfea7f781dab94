// Package metrics exposes essaylens counters and histograms on a private
// Prometheus registry. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "essaylens"

// Metrics holds the registered collectors.
type Metrics struct {
	registry *prometheus.Registry

	analyses       *prometheus.CounterVec
	duration       prometheus.Histogram
	detectedErrors *prometheus.CounterVec
	fallbacks      prometheus.Counter
	cache          *prometheus.CounterVec
}

// New registers all collectors on a fresh registry, along with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed essay analyses by method.",
		}, []string{"method"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one essay analysis.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		detectedErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detected_errors_total",
			Help:      "Resolved writing errors by category.",
		}, []string{"category"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_score_fallbacks_total",
			Help:      "Analyses that used neutral scores because the model scorer was unavailable.",
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_score_cache_total",
			Help:      "Model score cache lookups by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.analyses, m.duration, m.detectedErrors, m.fallbacks, m.cache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveAnalysis records one finished analysis.
func (m *Metrics) ObserveAnalysis(method string, took time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(method).Inc()
	m.duration.Observe(took.Seconds())
}

// AddErrors adds n detected errors of a category.
func (m *Metrics) AddErrors(category string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.detectedErrors.WithLabelValues(category).Add(float64(n))
}

// ModelFallback counts an analysis that ran on neutral model scores.
func (m *Metrics) ModelFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

// CacheLookup counts a model score cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}
