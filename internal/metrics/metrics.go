// Package metrics defines Prometheus metrics for the restock dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restock"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 when the last liveness probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 when the last readiness probe succeeded, 0 otherwise.",
	})
)

// Product cache metrics.
var (
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of product fetches served from the cache.",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of product fetches that went to the network.",
	})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of upstream product fetches in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	FetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_errors_total",
		Help:      "Total number of failed upstream product fetches.",
	})

	ExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of CSV exports requested.",
	})
)

// Upstream API metrics.
var (
	UpstreamCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_api_calls_total",
		Help:      "Total cumulative upstream API calls.",
	})

	UpstreamDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "upstream_daily_usage",
		Help:      "Current daily upstream API call count within the rolling 24-hour window.",
	})

	UpstreamDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_daily_limit_hits_total",
		Help:      "Total number of times the daily upstream API limit was reached.",
	})
)

// Push channel metrics.
var (
	PushEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_events_total",
		Help:      "Total push-channel events received, by event name.",
	}, []string{"event"})

	PushReconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_reconnects_total",
		Help:      "Total number of push-channel reconnect attempts.",
	})
)
