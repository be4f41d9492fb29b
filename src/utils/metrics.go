package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheStale = "stale"
	CacheError = "error"
)

var (
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cryptoapp",
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by cache name and result.",
	}, []string{"cache", "result"})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cryptoapp",
		Name:      "upstream_requests_total",
		Help:      "Requests sent to the market data provider by operation and outcome.",
	}, []string{"operation", "outcome"})

	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cryptoapp",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of market data provider requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	HoldingRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cryptoapp",
		Name:      "holding_recomputes_total",
		Help:      "Holding recomputations by resulting action.",
	}, []string{"action"})
)
