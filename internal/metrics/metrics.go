// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"mode", "outcome"}, // mode: "content", "collaborative"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"mode"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_results",
			Help:    "Number of items returned per recommendation query",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"mode"},
	)

	// Engine Metrics
	EngineBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "engine_build_duration_seconds",
			Help:    "Duration of recommendation engine builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120}, // large catalogs take minutes
		},
	)

	EngineBuildErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_build_errors_total",
			Help: "Total number of failed engine builds",
		},
	)

	EngineLastBuild = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_last_build_timestamp_seconds",
			Help: "Unix timestamp of the last successful engine build",
		},
	)

	CatalogSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_size",
			Help: "Size of the loaded catalog",
		},
		[]string{"kind"}, // kind: "items", "users", "ratings", "tags"
	)

	// Catalog Load Metrics
	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Duration of catalog loads in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"source"},
	)

	CatalogRowsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_rows_rejected_total",
			Help: "Total number of catalog rows dropped during load",
		},
		[]string{"kind", "reason"}, // kind: "item", "rating"; reason: "invalid", "duplicate", "orphaned"
	)

	// Enrichment Metrics
	EnrichmentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_requests_total",
			Help: "Total number of metadata lookups against the provider",
		},
		[]string{"result"}, // result: "found", "not_found", "error"
	)

	EnrichmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrichment_request_duration_seconds",
			Help:    "Duration of metadata provider requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of metadata cache hits",
		},
		[]string{"backend"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of metadata cache misses",
		},
		[]string{"backend"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of metadata cache backend errors",
		},
		[]string{"backend", "operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordRecommendation records a completed recommendation query.
func RecordRecommendation(mode, outcome string, returned int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(mode, outcome).Inc()
	RecommendationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(mode).Observe(float64(returned))
}

// RecordEngineBuild records an engine build. Sizes are only updated on success.
func RecordEngineBuild(duration time.Duration, items, users, ratings, tags int, err error) {
	if err != nil {
		EngineBuildErrors.Inc()
		return
	}
	EngineBuildDuration.Observe(duration.Seconds())
	EngineLastBuild.Set(float64(time.Now().Unix()))
	CatalogSize.WithLabelValues("items").Set(float64(items))
	CatalogSize.WithLabelValues("users").Set(float64(users))
	CatalogSize.WithLabelValues("ratings").Set(float64(ratings))
	CatalogSize.WithLabelValues("tags").Set(float64(tags))
}

// RecordCatalogLoad records the duration of a catalog load from source.
func RecordCatalogLoad(source string, duration time.Duration) {
	CatalogLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordEnrichmentRequest records a provider lookup.
func RecordEnrichmentRequest(result string, duration time.Duration) {
	EnrichmentRequests.WithLabelValues(result).Inc()
	EnrichmentDuration.Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss for backend.
func RecordCacheLookup(backend string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(backend).Inc()
	} else {
		CacheMisses.WithLabelValues(backend).Inc()
	}
}

// RecordCacheError records a failed cache operation.
func RecordCacheError(backend, operation string) {
	CacheErrors.WithLabelValues(backend, operation).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
