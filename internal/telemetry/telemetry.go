// Package telemetry registers the indexer's Prometheus metrics. Every metric
// name matches the set the indexing runtime, realtime sync, RPC queue, and
// indexing store are expected to drive; components receive this package's
// Metrics handle rather than touching promauto/prometheus directly, so a
// package under test can swap in a local registry.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every Prometheus collector the indexer reports, grouped by
// the subsystem that drives them.
type Metrics struct {
	// Indexing runtime.
	IndexingCompletedEvents  *prometheus.CounterVec
	IndexingFunctionDuration *prometheus.HistogramVec
	IndexingHasError         *prometheus.GaugeVec
	IndexingTimestamp        *prometheus.GaugeVec
	IndexingCompletedSeconds *prometheus.GaugeVec

	// Realtime sync.
	SyncBlock          *prometheus.GaugeVec
	SyncFinalizedBlock *prometheus.GaugeVec
	SyncIsRealtime     *prometheus.GaugeVec
	SyncIsComplete     *prometheus.GaugeVec
	RealtimeReorgs     *prometheus.CounterVec
	RealtimeLatency    *prometheus.HistogramVec

	// RPC queue.
	RPCRequestDuration *prometheus.HistogramVec
	RPCRequestErrors   *prometheus.CounterVec

	// Indexing store.
	DatabaseMethodDuration *prometheus.HistogramVec
	CacheRequests          *prometheus.CounterVec
}

// New registers every collector against reg. Pass prometheus.NewRegistry()
// in tests to avoid colliding with the global default registry across
// parallel test packages.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		IndexingCompletedEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "indexing_completed_events",
			Help: "Total number of events processed by each indexing function.",
		}, []string{"chain", "event"}),

		IndexingFunctionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "indexing_function_duration_seconds",
			Help:    "Duration of each indexing function call.",
			Buckets: prometheus.DefBuckets,
		}, []string{"chain", "event"}),

		IndexingHasError: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "indexing_has_error",
			Help: "1 if the indexing run has encountered a fatal error, 0 otherwise.",
		}, []string{"chain"}),

		IndexingTimestamp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "indexing_timestamp",
			Help: "Block timestamp of the most recently indexed event.",
		}, []string{"chain"}),

		IndexingCompletedSeconds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "indexing_completed_seconds",
			Help: "Wall-clock seconds of chain history indexed so far, for ETA estimation.",
		}, []string{"chain"}),

		SyncBlock: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sync_block",
			Help: "Most recently synced block number.",
		}, []string{"chain"}),

		SyncFinalizedBlock: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sync_finalized_block",
			Help: "Most recently finalized block number.",
		}, []string{"chain"}),

		SyncIsRealtime: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sync_is_realtime",
			Help: "1 if the chain's sync service has caught up to realtime, 0 during historical backfill.",
		}, []string{"chain"}),

		SyncIsComplete: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sync_is_complete",
			Help: "1 if historical backfill for the chain has fully completed.",
		}, []string{"chain"}),

		RealtimeReorgs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "realtime_reorg_total",
			Help: "Total number of chain reorganizations detected.",
		}, []string{"chain"}),

		RealtimeLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "realtime_latency_seconds",
			Help:    "Seconds between a block's timestamp and when it was processed.",
			Buckets: prometheus.DefBuckets,
		}, []string{"chain"}),

		RPCRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rpc_request_duration_seconds",
			Help:    "Duration of JSON-RPC requests to chain providers.",
			Buckets: prometheus.DefBuckets,
		}, []string{"chain", "method"}),

		RPCRequestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rpc_request_error_total",
			Help: "Total number of failed JSON-RPC requests.",
		}, []string{"chain", "method"}),

		DatabaseMethodDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "database_method_duration_seconds",
			Help:    "Duration of indexing store method calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),

		CacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Indexing store cache lookups, by outcome.",
		}, []string{"type"}),
	}
}

// Handler returns the standard promhttp handler for a /metrics endpoint.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
