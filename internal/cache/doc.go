// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package cache stores enrichment lookups so that poster and overview requests
do not hit the metadata provider on every recommendation.

Values are opaque byte slices with a per-entry TTL. Callers own the encoding
(the enrichment package stores JSON). Three backends are available:

  - memory: bounded LRU in process memory, lost on restart
  - badger: embedded BadgerDB on local disk, survives restarts
  - redis: shared between replicas

# Usage

	store, err := cache.Open(&cfg.Enrichment.Cache)
	if err != nil {
	    return err
	}
	defer store.Close()

	if err := store.Set(ctx, "tmdb:toy story:1995", payload, 24*time.Hour); err != nil {
	    logger.Warn().Err(err).Msg("cache write failed")
	}

	data, err := store.Get(ctx, "tmdb:toy story:1995")
	switch {
	case errors.Is(err, cache.ErrMiss):
	    // fetch from provider
	case err != nil:
	    // backend failure, treat as a miss
	}

Backend failures are reported as errors, never as misses, so callers can
count them separately.
*/
package cache
