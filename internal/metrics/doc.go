// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package metrics provides Prometheus collectors for the recommendation service.

All collectors are registered with the default registry through promauto and
exposed by the API server at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Recommendation Metrics:
  - recommendations_total: Queries served (counter)
    Labels: mode (content, collaborative), outcome
  - recommendation_duration_seconds: Query latency (histogram)
    Labels: mode
  - recommendation_results: Items returned per query (histogram)
    Labels: mode

Engine Metrics:
  - engine_build_duration_seconds: Index build time (histogram)
  - engine_build_errors_total: Failed builds (counter)
  - engine_last_build_timestamp_seconds: Last successful build (gauge)
  - catalog_size: Items, users, ratings and tags in the live engine (gauge)
    Labels: kind

Catalog Metrics:
  - catalog_load_duration_seconds: Load time (histogram)
    Labels: source (csv, mongo, memory)
  - catalog_rows_rejected_total: Dropped rows (counter)
    Labels: kind (item, rating), reason (invalid, duplicate, orphaned)

Enrichment Metrics:
  - enrichment_requests_total: Provider lookups (counter)
    Labels: result (found, not_found, error)
  - enrichment_request_duration_seconds: Provider latency (histogram)
  - cache_hits_total, cache_misses_total: Metadata cache efficiency (counter)
    Labels: backend
  - cache_errors_total: Backend failures (counter)
    Labels: backend, operation

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests by result (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: (gauge)
  - circuit_breaker_state_transitions_total: (counter)
    Labels: name, from_state, to_state

API Metrics:
  - api_requests_total: Requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rejections (counter)
    Labels: endpoint

# Usage

	start := time.Now()
	res, err := engine.RecommendByContent(ctx, q)
	metrics.RecordRecommendation("content", res.Outcome.String(), len(res.Items), time.Since(start))

# Cardinality

Label values are drawn from small fixed sets. The endpoint label uses the
chi route pattern, never the raw path, so query parameters and ids do not
create new series.
*/
package metrics
