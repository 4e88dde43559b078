// Package metrics defines the Prometheus collectors for index builds and
// phrase queries and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	DocsIndexedTotal    prometheus.Counter
	IndexTerms          prometheus.Gauge
	IndexBuildDuration  prometheus.Histogram
	PhraseQueriesTotal  *prometheus.CounterVec
	PhraseQueryLatency  *prometheus.HistogramVec
	PhraseResultsCount  prometheus.Histogram
	CacheHitsTotal      prometheus.Counter
	CacheMissesTotal    prometheus.Counter
	CacheErrorsTotal    prometheus.Counter
	SourceDocumentsRead *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_indexed_total",
				Help: "Total documents added to an index.",
			},
		),
		IndexTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_terms",
				Help: "Number of distinct terms in the most recently built index.",
			},
		),
		IndexBuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "index_build_duration_seconds",
				Help:    "Time spent building an index.",
				Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
			},
		),
		PhraseQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phrase_queries_total",
				Help: "Total phrase queries by result type (hit, zero_result, error).",
			},
			[]string{"result_type"},
		),
		PhraseQueryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "phrase_query_latency_seconds",
				Help:    "Phrase query latency in seconds.",
				Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"cache_status"},
		),
		PhraseResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "phrase_results_count",
				Help:    "Number of matching documents per phrase query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of result cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of result cache misses.",
			},
		),
		CacheErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_errors_total",
				Help: "Total number of result cache backend failures.",
			},
		),
		SourceDocumentsRead: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "source_documents_read_total",
				Help: "Documents loaded per source kind.",
			},
			[]string{"source"},
		),
	}

	reg.MustRegister(
		m.DocsIndexedTotal,
		m.IndexTerms,
		m.IndexBuildDuration,
		m.PhraseQueriesTotal,
		m.PhraseQueryLatency,
		m.PhraseResultsCount,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CacheErrorsTotal,
		m.SourceDocumentsRead,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
