// Package metrics exposes analysis counters in the Prometheus text format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "boxplot"

// CacheStatsFunc reports cumulative summary cache hits and misses
type CacheStatsFunc func() (hits, misses uint64)

// Metrics owns a private registry so several containers can coexist in one
// process (tests build many).
type Metrics struct {
	registry *prometheus.Registry
	analyses *prometheus.CounterVec
	rejected *prometheus.CounterVec
	outliers prometheus.Histogram
}

// New creates the collectors and registers them, together with the Go runtime
// collector, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "completed_total",
			Help:      "The number of analyses computed and stored",
		}, []string{"source"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "rejected_total",
			Help:      "The number of datasets rejected, by error code",
		}, []string{"code"}),
		outliers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "outliers",
			Help:      "The number of outliers found per analysis",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		}),
	}
	m.registry.MustRegister(
		m.analyses,
		m.rejected,
		m.outliers,
		collectors.NewGoCollector(),
	)
	return m
}

// AnalysisRecorded counts a stored analysis
func (m *Metrics) AnalysisRecorded(source string, outliers int) {
	m.analyses.WithLabelValues(source).Inc()
	m.outliers.Observe(float64(outliers))
}

// AnalysisRejected counts a dataset that failed parsing or validation
func (m *Metrics) AnalysisRejected(code string) {
	m.rejected.WithLabelValues(code).Inc()
}

// RegisterCache exports the summary cache counters. Call it once per cache.
func (m *Metrics) RegisterCache(stats CacheStatsFunc) {
	m.registry.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "summary_cache",
			Name:      "hits_total",
			Help:      "The number of summaries served from the cache",
		}, func() float64 {
			hits, _ := stats()
			return float64(hits)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "summary_cache",
			Name:      "misses_total",
			Help:      "The number of summaries computed because the cache had no entry",
		}, func() float64 {
			_, misses := stats()
			return float64(misses)
		}),
	)
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
