// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrichment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// cacheEntry is the stored form. Found=false records a negative result.
type cacheEntry struct {
	Found    bool      `json:"found"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// CachedFetcher is a read-through cache in front of another Fetcher.
// Matches are kept for ttl and misses for negativeTTL. Errors other than
// ErrNotFound are never cached. A failing cache backend degrades to a
// live fetch.
type CachedFetcher struct {
	next        Fetcher
	store       cache.Store
	ttl         time.Duration
	negativeTTL time.Duration
}

// NewCachedFetcher creates a CachedFetcher over store.
func NewCachedFetcher(next Fetcher, store cache.Store, ttl, negativeTTL time.Duration) *CachedFetcher {
	return &CachedFetcher{next: next, store: store, ttl: ttl, negativeTTL: negativeTTL}
}

// CacheKey returns the cache key for a catalog title.
func CacheKey(title string) string {
	return strings.ToLower(NormalizeTitle(title))
}

// Fetch implements Fetcher.
func (c *CachedFetcher) Fetch(ctx context.Context, title string) (*Metadata, error) {
	key := CacheKey(title)
	backend := c.store.Name()
	logger := logging.Ctx(ctx)

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var entry cacheEntry
		if jerr := json.Unmarshal(raw, &entry); jerr == nil {
			metrics.RecordCacheLookup(backend, true)
			if !entry.Found || entry.Metadata == nil {
				return nil, ErrNotFound
			}
			return entry.Metadata, nil
		}
		// unreadable entry, refetch and overwrite
		metrics.RecordCacheError(backend, "decode")
	case errors.Is(err, cache.ErrMiss):
		metrics.RecordCacheLookup(backend, false)
	default:
		metrics.RecordCacheError(backend, "get")
		logger.Warn().Err(err).Str("backend", backend).Msg("cache read failed")
	}

	md, err := c.next.Fetch(ctx, title)
	if err == nil && md == nil {
		err = ErrNotFound
	}
	switch {
	case err == nil:
		c.put(ctx, key, cacheEntry{Found: true, Metadata: md}, c.ttl)
	case errors.Is(err, ErrNotFound):
		c.put(ctx, key, cacheEntry{Found: false}, c.negativeTTL)
	}
	return md, err
}

func (c *CachedFetcher) put(ctx context.Context, key string, entry cacheEntry, ttl time.Duration) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		metrics.RecordCacheError(c.store.Name(), "set")
		logging.Ctx(ctx).Warn().Err(err).Str("backend", c.store.Name()).Msg("cache write failed")
	}
}
