// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api provides the HTTP interface of ReelMatch.

Routing uses chi with go-chi/cors and go-chi/httprate. Every response is a
models.APIResponse envelope encoded with goccy/go-json.

Endpoints:

	GET /api/v1/health                           service health
	GET /api/v1/health/live                      liveness probe
	GET /api/v1/health/ready                     readiness probe (503 until an engine is built)
	GET /api/v1/recommendations/content          items similar to title or item_id
	GET /api/v1/recommendations/users/{userID}   items liked by similar users
	GET /api/v1/catalog/genres                   genre choices, "All" first
	GET /api/v1/catalog/years                    release years
	GET /api/v1/catalog/users                    rating users (limit, offset)
	GET /api/v1/catalog/titles                   titles (q, limit, offset)
	GET /api/v1/catalog/items/{itemID}           one item with rating stats
	GET /api/v1/catalog/stats                    engine statistics
	GET /metrics                                 Prometheus metrics

Recommendation parameters:

  - num: neighbors retrieved before filtering (default and cap from config)
  - genre: exact tag; "All" or empty disables it
  - year: release year; "All" or empty disables it
  - min_rating, max_rating: inclusive mean-rating range. When both are
    absent the configured default range applies; min_rating=-1 disables
    the range entirely
  - filter: CEL predicate over item (see package expr)
  - enrich: attach TMDB posters and overviews (default: on when enabled)
  - neighbors: user endpoint only, overrides the neighbor count

An empty recommendation is not an error. The response is 200 with
data.outcome set to unknown_item, unknown_user, no_candidates or no_match
and data.items set to [].

Handlers read the engine once per request from recommend.Holder, so a
catalog reload never changes the engine under a running request.
*/
package api
