// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrichment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// maxErrorBodySize limits how much of an error response is read into the error.
const maxErrorBodySize = 4 * 1024

// TMDBClient searches the TMDB v3 API.
type TMDBClient struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	client       *http.Client
	limiter      *rate.Limiter
}

// tmdbSearchResponse is the subset of /search/movie that is used.
type tmdbSearchResponse struct {
	Results []struct {
		ID          int      `json:"id"`
		Title       string   `json:"title"`
		PosterPath  string   `json:"poster_path"`
		Overview    string   `json:"overview"`
		ReleaseDate string   `json:"release_date"`
		VoteAverage *float64 `json:"vote_average"`
	} `json:"results"`
}

// NewTMDBClient creates a client from the enrichment configuration.
// Requests are paced at cfg.RateLimit per second with cfg.RateBurst burst.
func NewTMDBClient(cfg *config.EnrichmentConfig) *TMDBClient {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &TMDBClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		apiKey:       cfg.TMDBAPIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Fetch implements Fetcher. The first search result wins.
func (c *TMDBClient) Fetch(ctx context.Context, title string) (*Metadata, error) {
	start := time.Now()
	md, err := c.search(ctx, NormalizeTitle(title))

	result := "found"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.RecordEnrichmentRequest(result, time.Since(start))
	return md, err
}

func (c *TMDBClient) search(ctx context.Context, query string) (*Metadata, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %w", ErrUnavailable, err)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	reqURL := fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, fmt.Errorf("tmdb search failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out tmdbSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode tmdb response: %w", err)
	}
	if len(out.Results) == 0 {
		return nil, ErrNotFound
	}

	first := out.Results[0]
	md := &Metadata{
		ProviderID:  first.ID,
		Overview:    first.Overview,
		ReleaseDate: first.ReleaseDate,
		Rating:      first.VoteAverage,
	}
	if first.PosterPath != "" {
		md.PosterURL = c.imageBaseURL + first.PosterPath
	}
	return md, nil
}
