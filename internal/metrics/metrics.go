package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus metrics for fetch, cache and analysis runs.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	CacheLookups  *prometheus.CounterVec // labels: result=hit|miss|stale|corrupt
	FetchesTotal  *prometheus.CounterVec // labels: source, status=ok|error
	FetchDuration prometheus.Histogram
	RunsTotal     *prometheus.CounterVec // labels: status
	RunDuration   prometheus.Histogram
}

// NewMetrics creates the metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockanalyzer_cache_lookups_total",
			Help: "Cache file lookups by result",
		}, []string{"result"}),
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockanalyzer_fetches_total",
			Help: "Market data fetches by source and status",
		}, []string{"source", "status"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockanalyzer_fetch_duration_seconds",
			Help:    "Market data fetch latency",
			Buckets: prometheus.DefBuckets,
		}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockanalyzer_runs_total",
			Help: "Analysis runs by status",
		}, []string{"status"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockanalyzer_run_duration_seconds",
			Help:    "End-to-end analysis latency including chart rendering",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
	m.registry.MustRegister(
		m.CacheLookups,
		m.FetchesTotal,
		m.FetchDuration,
		m.RunsTotal,
		m.RunDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CacheLookup counts one cache decision.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Fetch records one call to the market data source.
func (m *Metrics) Fetch(source string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.FetchesTotal.WithLabelValues(source, status).Inc()
	m.FetchDuration.Observe(d.Seconds())
}

// Run records one analysis action.
func (m *Metrics) Run(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDuration.Observe(d.Seconds())
}
