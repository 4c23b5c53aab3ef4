// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package enrichment decorates recommendations with poster, synopsis,
// release date and external rating fetched from TMDB.
//
// Lookups are layered as Fetchers:
//
//	TMDBClient            HTTP search, rate limited
//	  -> BreakerFetcher   stops calling TMDB while it is failing
//	    -> CachedFetcher  read-through cache, negative entries included
//
// Enricher fans out over a recommendation list with bounded concurrency and
// a per-item deadline. A failed lookup never fails the request: the item is
// returned with the placeholder poster and Available=false.
package enrichment

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrNotFound means the provider had no match for the title.
	ErrNotFound = errors.New("enrichment: no match")

	// ErrUnavailable means the provider could not be asked (breaker open,
	// rate limit wait exceeded the deadline, transport failure).
	ErrUnavailable = errors.New("enrichment: provider unavailable")
)

// DefaultPlaceholderURL is shown for items without a poster.
const DefaultPlaceholderURL = "https://via.placeholder.com/300x450?text=No+Image"

// Metadata is what the provider knows about a title.
type Metadata struct {
	ProviderID  int      `json:"provider_id,omitempty"`
	PosterURL   string   `json:"poster_url,omitempty"` // empty when the provider has no poster
	Overview    string   `json:"overview,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// Fetcher looks up metadata for a catalog title.
type Fetcher interface {
	Fetch(ctx context.Context, title string) (*Metadata, error)
}

// NormalizeTitle turns a catalog title into a search query by dropping
// everything from the first " (" on, e.g. "Heat (1995)" -> "Heat" and
// "Seven (a.k.a. Se7en) (1995)" -> "Seven".
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if before, _, found := strings.Cut(title, " ("); found {
		if q := strings.TrimSpace(before); q != "" {
			return q
		}
	}
	return title
}

// StaticFetcher serves canned metadata keyed by normalized title. Titles
// not in the map return ErrNotFound. Useful in tests and offline demos.
type StaticFetcher struct {
	mu    sync.Mutex
	data  map[string]Metadata
	calls int
}

// NewStaticFetcher creates a StaticFetcher. Keys are normalized on insert.
func NewStaticFetcher(data map[string]Metadata) *StaticFetcher {
	f := &StaticFetcher{data: make(map[string]Metadata, len(data))}
	for title, md := range data {
		f.data[NormalizeTitle(title)] = md
	}
	return f
}

// Fetch implements Fetcher.
func (f *StaticFetcher) Fetch(ctx context.Context, title string) (*Metadata, error) {
	f.mu.Lock()
	f.calls++
	md, ok := f.data[NormalizeTitle(title)]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &md, nil
}

// Calls returns how many times Fetch was invoked.
func (f *StaticFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
