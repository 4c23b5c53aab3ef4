// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the entry point for the ReelMatch server.

ReelMatch serves two kinds of movie recommendations over HTTP:
  - content: titles whose genre tags are closest (TF-IDF cosine) to a chosen title
  - collaborative: titles rated highest by the users whose ratings are
    closest (cosine over the user-item matrix) to a chosen user

Both are post-filtered by genre, year, mean-rating range and an optional
CEL expression, and optionally enriched with TMDB posters and overviews.

# Startup

 1. Configuration: Koanf v2 (defaults, .env, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Catalog store: DuckDB over MovieLens CSV files, MongoDB, or the built-in demo catalog
 4. Engine: built synchronously; an empty catalog or one without raters aborts startup
 5. Enrichment (optional): TMDB client behind a circuit breaker and a memory, Badger or Redis cache
 6. HTTP: chi router with CORS, per-IP rate limits, Prometheus metrics
 7. Supervisor tree: suture v4 with catalog and api layers

# Supervisor Tree

	RootSupervisor ("reelmatch")
	├── CatalogSupervisor ("catalog-layer")
	│   └── CatalogService (SIGHUP / CATALOG_RELOAD_INTERVAL rebuilds)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Signals

  - SIGHUP: reload the catalog and swap in a new engine; the old one keeps
    serving if the rebuild fails
  - SIGINT, SIGTERM: stop accepting connections, drain in-flight requests
    within SHUTDOWN_TIMEOUT, close the catalog store and cache

# Example Usage

Demo catalog, console logs:

	CATALOG_SOURCE=memory LOG_FORMAT=console ./reelmatch

MovieLens files with TMDB posters cached in Badger:

	export CATALOG_DATA_DIR=/data/ml-latest-small
	export ENRICHMENT_ENABLED=true
	export TMDB_API_KEY=your-tmdb-key
	export CACHE_BACKEND=badger
	export CACHE_BADGER_PATH=/data/cache
	./reelmatch

Then:

	curl 'localhost:8080/api/v1/recommendations/content?title=Heat%20(1995)&num=5'
	curl 'localhost:8080/api/v1/recommendations/users/42?genre=Drama&min_rating=3.5'
*/
package main
