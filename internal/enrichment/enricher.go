// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrichment

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Enriched is a recommendation with provider metadata attached.
type Enriched struct {
	recommend.Recommendation

	PosterURL      string   `json:"poster_url"`
	Overview       string   `json:"overview,omitempty"`
	ReleaseDate    string   `json:"release_date,omitempty"`
	ExternalRating *float64 `json:"external_rating,omitempty"`

	// Available is false when the provider had nothing or could not be reached.
	Available bool `json:"available"`
}

// EnricherConfig tunes an Enricher.
type EnricherConfig struct {
	Timeout        time.Duration // per item
	Concurrency    int
	PlaceholderURL string
}

// Enricher attaches metadata to recommendation lists.
type Enricher struct {
	fetcher     Fetcher
	timeout     time.Duration
	concurrency int
	placeholder string
}

// NewEnricher creates an Enricher. Zero config values fall back to a 5s
// timeout, 8 concurrent lookups and DefaultPlaceholderURL.
func NewEnricher(fetcher Fetcher, cfg EnricherConfig) *Enricher {
	e := &Enricher{
		fetcher:     fetcher,
		timeout:     cfg.Timeout,
		concurrency: cfg.Concurrency,
		placeholder: cfg.PlaceholderURL,
	}
	if e.timeout <= 0 {
		e.timeout = 5 * time.Second
	}
	if e.concurrency <= 0 {
		e.concurrency = 8
	}
	if e.placeholder == "" {
		e.placeholder = DefaultPlaceholderURL
	}
	return e
}

// Enrich looks up every recommendation concurrently. The output has the
// same order and length as recs. Lookup failures are logged and produce
// the placeholder poster; Enrich itself never fails.
func (e *Enricher) Enrich(ctx context.Context, recs []recommend.Recommendation) []Enriched {
	out := make([]Enriched, len(recs))
	logger := logging.Ctx(ctx).With().Str("component", "enrichment").Logger()

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)
	for i := range recs {
		out[i] = Enriched{Recommendation: recs[i], PosterURL: e.placeholder}
		g.Go(func() error {
			itemCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			md, err := e.fetcher.Fetch(itemCtx, recs[i].Title)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					logger.Debug().Err(err).Int("item_id", recs[i].ItemID).Msg("metadata lookup failed")
				}
				return nil
			}
			if md == nil {
				return nil
			}
			out[i].apply(md, e.placeholder)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (en *Enriched) apply(md *Metadata, placeholder string) {
	en.Available = true
	en.Overview = md.Overview
	en.ReleaseDate = md.ReleaseDate
	en.ExternalRating = md.Rating
	en.PosterURL = md.PosterURL
	if en.PosterURL == "" {
		en.PosterURL = placeholder
	}
}

// Placeholder returns recs wrapped without any lookup, used when enrichment
// is disabled.
func Placeholder(recs []recommend.Recommendation, placeholderURL string) []Enriched {
	if placeholderURL == "" {
		placeholderURL = DefaultPlaceholderURL
	}
	out := make([]Enriched, len(recs))
	for i := range recs {
		out[i] = Enriched{Recommendation: recs[i], PosterURL: placeholderURL}
	}
	return out
}
