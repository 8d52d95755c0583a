// Package metrics defines the Prometheus collectors for index and search
// activity and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the index.
type Metrics struct {
	DocsIndexedTotal   prometheus.Counter
	DocsUpdatedTotal   prometheus.Counter
	DocsRemovedTotal   prometheus.Counter
	IngestErrorsTotal  *prometheus.CounterVec
	SearchQueriesTotal *prometheus.CounterVec
	SearchLatency      prometheus.Histogram
	SearchResultsCount prometheus.Histogram
	IndexedDocuments   prometheus.Gauge
	IndexedTokens      prometheus.Gauge
}

// New creates and registers all collectors on the default registry.
func New() *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_indexed_total",
				Help: "Total documents added to the index.",
			},
		),
		DocsUpdatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_updated_total",
				Help: "Total documents reindexed in place.",
			},
		),
		DocsRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "docs_removed_total",
				Help: "Total documents removed from the index.",
			},
		),
		IngestErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_errors_total",
				Help: "Total rejected documents by reason (missing_id, duplicate_id, malformed).",
			},
			[]string{"reason"},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by result type (hit, zero_result, browse).",
			},
			[]string{"result_type"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
		),
		IndexedDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "indexed_documents",
				Help: "Number of documents currently stored in the index.",
			},
		),
		IndexedTokens: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "indexed_tokens",
				Help: "Number of distinct tokens with live postings.",
			},
		),
	}

	prometheus.MustRegister(
		m.DocsIndexedTotal,
		m.DocsUpdatedTotal,
		m.DocsRemovedTotal,
		m.IngestErrorsTotal,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.IndexedDocuments,
		m.IndexedTokens,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
