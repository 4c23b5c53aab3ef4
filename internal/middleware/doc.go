// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides chi-compatible HTTP middleware shared by the API
router.

Key Components:

  - RequestID: request and correlation ids for the logging context, echoed
    in X-Request-ID
  - PrometheusMetrics: request count, latency and in-flight gauge labeled
    by chi route pattern

Both have the func(http.Handler) http.Handler shape accepted by chi's
Router.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

PrometheusMetrics reads the route pattern after the handler returns, so it
must be installed on the router (or a sub-router), not wrapped around it.
*/
package middleware
