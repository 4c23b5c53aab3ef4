// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"fmt"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/enrichment"
	"github.com/tomtom215/reelmatch/internal/logging"
)

// EnrichmentComponents holds the metadata lookup chain.
type EnrichmentComponents struct {
	Enricher *enrichment.Enricher
	Breaker  *enrichment.BreakerFetcher
	cache    cache.Store
}

// initEnrichment builds TMDB -> circuit breaker -> cache -> Enricher.
// Returns nil when enrichment is disabled.
func initEnrichment(cfg *config.EnrichmentConfig) (*EnrichmentComponents, error) {
	if !cfg.Enabled {
		logging.Info().Msg("Enrichment disabled (ENRICHMENT_ENABLED=false), serving placeholder posters")
		return nil, nil
	}

	breaker := enrichment.NewBreakerFetcher(enrichment.NewTMDBClient(cfg), &cfg.Breaker)
	var fetcher enrichment.Fetcher = breaker

	store, err := cache.Open(&cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("open %s enrichment cache: %w", cfg.Cache.Backend, err)
	}
	if store != nil {
		fetcher = enrichment.NewCachedFetcher(fetcher, store, cfg.Cache.TTL, cfg.Cache.NegativeTTL)
	}

	logging.Info().
		Str("cache", cfg.Cache.Backend).
		Float64("rate_limit", cfg.RateLimit).
		Int("concurrency", cfg.Concurrency).
		Msg("TMDB enrichment enabled")

	return &EnrichmentComponents{
		Enricher: enrichment.NewEnricher(fetcher, enrichment.EnricherConfig{
			Timeout:        cfg.Timeout,
			Concurrency:    cfg.Concurrency,
			PlaceholderURL: cfg.PlaceholderURL,
		}),
		Breaker: breaker,
		cache:   store,
	}, nil
}

// Close releases the cache backend.
func (c *EnrichmentComponents) Close() error {
	if c == nil || c.cache == nil {
		return nil
	}
	return c.cache.Close()
}
