package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Diagnostics counters, exposed on /metrics. Not part of the functional
// contract.
var (
	digestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "digest_duration_seconds",
		Help:    "End-to-end digest pipeline duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
	})

	chunksProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "digest_chunks_processed_total",
		Help: "Total chunks successfully processed by the engine",
	})

	chunksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "digest_chunks_skipped_total",
		Help: "Total chunks skipped after exhausting retries",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "digest_cache_hits_total",
		Help: "Digest cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "digest_cache_misses_total",
		Help: "Digest cache misses",
	})
)
