// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package models defines the JSON payloads of the ReelMatch HTTP API.

Every endpoint writes an APIResponse envelope:

	{"status": "success", "data": {...}, "metadata": {"timestamp": "..."}}
	{"status": "error", "error": {"code": "...", "message": "..."}, "metadata": {...}}

Payload types:

  - RecommendationResponse: result of either recommendation endpoint, with
    the effective query echoed back in RecommendationQuery
  - ItemResponse: one catalog item with its rating stats
  - GenresResponse, YearsResponse: filter choices
  - UsersResponse, TitlesResponse: paginated catalog listings
  - HealthStatus: service health

Recommendation items are enrichment.Enriched values. When enrichment is off
they still carry the placeholder poster, so clients always see the same
shape.

Thread Safety:

All types are plain values; none are safe for concurrent mutation.
*/
package models
