// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package catalog loads the item catalog and the rating log that feed the
// recommendation engine.
//
// A Store reads raw rows from a backend (CSV files through DuckDB, MongoDB,
// or memory). Load validates the rows, drops what cannot be used and
// returns a recommend.Snapshot together with a LoadReport describing what
// was rejected and why.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// Store reads the raw catalog from a backend.
type Store interface {
	// LoadItems returns every catalog row. Rows are validated by Load.
	LoadItems(ctx context.Context) ([]recommend.Item, error)

	// LoadRatings returns every rating observation.
	LoadRatings(ctx context.Context) ([]recommend.Rating, error)

	// Close releases backend resources.
	Close() error
}

// ErrRejectedRow is returned by Load in strict mode when any row is dropped.
var ErrRejectedRow = errors.New("catalog: rejected row")

// maxReportedErrors caps the rejection reasons kept in a LoadReport.
const maxReportedErrors = 20

// Options tunes Load.
type Options struct {
	// Strict fails the load on the first rejected row instead of skipping it.
	Strict bool

	// MinRating and MaxRating bound accepted rating values (inclusive).
	MinRating float64
	MaxRating float64
}

// DefaultOptions returns lenient options with the MovieLens star scale.
func DefaultOptions() Options {
	return Options{
		Strict:    false,
		MinRating: 0.5,
		MaxRating: 5.0,
	}
}

// LoadReport describes the outcome of a Load.
type LoadReport struct {
	ItemsRead     int `json:"items_read"`
	ItemsLoaded   int `json:"items_loaded"`
	RatingsRead   int `json:"ratings_read"`
	RatingsLoaded int `json:"ratings_loaded"`

	InvalidItems    int `json:"invalid_items"`
	DuplicateItems  int `json:"duplicate_items"`
	InvalidRatings  int `json:"invalid_ratings"`
	OrphanedRatings int `json:"orphaned_ratings"` // reference an unknown item

	// Errors holds the first rejection reasons, for operators.
	Errors []string `json:"errors,omitempty"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Rejected returns the number of dropped rows.
func (r *LoadReport) Rejected() int {
	return r.InvalidItems + r.DuplicateItems + r.InvalidRatings + r.OrphanedRatings
}

// Duration returns how long the load took.
func (r *LoadReport) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}

func (r *LoadReport) note(msg string) {
	if len(r.Errors) < maxReportedErrors {
		r.Errors = append(r.Errors, msg)
	}
}

// itemRow is the validated shape of a catalog row.
type itemRow struct {
	ID    int    `validate:"gt=0"`
	Title string `validate:"required,notblank,max=1000"`
	Year  int    `validate:"gte=0,lte=9999"`
}

// ratingRow is the validated shape of a rating observation. The value is
// checked separately against configured bounds.
type ratingRow struct {
	UserID int `validate:"gt=0"`
	ItemID int `validate:"gt=0"`
}

// Load reads and validates a complete snapshot from store.
func Load(ctx context.Context, store Store, opts Options) (*recommend.Snapshot, *LoadReport, error) {
	report := &LoadReport{StartTime: time.Now()}
	logger := logging.Ctx(ctx).With().Str("component", "catalog").Logger()

	if opts.MinRating > opts.MaxRating {
		return nil, report, fmt.Errorf("invalid rating bounds %g > %g", opts.MinRating, opts.MaxRating)
	}

	rawItems, err := store.LoadItems(ctx)
	if err != nil {
		return nil, report, fmt.Errorf("load items: %w", err)
	}
	rawRatings, err := store.LoadRatings(ctx)
	if err != nil {
		return nil, report, fmt.Errorf("load ratings: %w", err)
	}
	report.ItemsRead = len(rawItems)
	report.RatingsRead = len(rawRatings)

	items, err := acceptItems(rawItems, opts, report)
	if err != nil {
		return nil, report, err
	}
	if len(items) == 0 {
		return nil, report, recommend.ErrEmptyCatalog
	}

	if err := ctx.Err(); err != nil {
		return nil, report, err
	}

	ratings, err := acceptRatings(rawRatings, items, opts, report)
	if err != nil {
		return nil, report, err
	}

	report.ItemsLoaded = len(items)
	report.RatingsLoaded = len(ratings)
	report.EndTime = time.Now()

	metrics.CatalogRowsRejected.WithLabelValues("item", "invalid").Add(float64(report.InvalidItems))
	metrics.CatalogRowsRejected.WithLabelValues("item", "duplicate").Add(float64(report.DuplicateItems))
	metrics.CatalogRowsRejected.WithLabelValues("rating", "invalid").Add(float64(report.InvalidRatings))
	metrics.CatalogRowsRejected.WithLabelValues("rating", "orphaned").Add(float64(report.OrphanedRatings))

	event := logger.Info()
	if report.Rejected() > 0 {
		event = logger.Warn().Strs("first_errors", report.Errors)
	}
	event.
		Int("items", report.ItemsLoaded).
		Int("ratings", report.RatingsLoaded).
		Int("rejected", report.Rejected()).
		Dur("duration", report.Duration()).
		Msg("catalog loaded")

	return &recommend.Snapshot{Items: items, Ratings: ratings}, report, nil
}

func acceptItems(raw []recommend.Item, opts Options, report *LoadReport) ([]recommend.Item, error) {
	items := make([]recommend.Item, 0, len(raw))
	seenIDs := make(map[int]struct{}, len(raw))
	seenTitles := make(map[string]struct{}, len(raw))

	for i := range raw {
		it := raw[i]
		row := itemRow{ID: it.ID, Title: it.Title, Year: it.Year}
		if verr := validation.ValidateStruct(&row); verr != nil {
			report.InvalidItems++
			msg := fmt.Sprintf("item %d: %s", it.ID, verr.Error())
			report.note(msg)
			if opts.Strict {
				return nil, fmt.Errorf("%w: %s", ErrRejectedRow, msg)
			}
			continue
		}

		_, dupID := seenIDs[it.ID]
		_, dupTitle := seenTitles[it.Title]
		if dupID || dupTitle {
			report.DuplicateItems++
			msg := fmt.Sprintf("item %d: duplicate id or title %q", it.ID, it.Title)
			report.note(msg)
			if opts.Strict {
				return nil, fmt.Errorf("%w: %s", ErrRejectedRow, msg)
			}
			continue
		}
		seenIDs[it.ID] = struct{}{}
		seenTitles[it.Title] = struct{}{}

		it.Tags = cleanTags(it.Tags)
		items = append(items, it)
	}
	return items, nil
}

func acceptRatings(raw []recommend.Rating, items []recommend.Item, opts Options, report *LoadReport) ([]recommend.Rating, error) {
	known := make(map[int]struct{}, len(items))
	for i := range items {
		known[items[i].ID] = struct{}{}
	}
	bounds := fmt.Sprintf("gte=%g,lte=%g", opts.MinRating, opts.MaxRating)

	ratings := make([]recommend.Rating, 0, len(raw))
	for _, r := range raw {
		row := ratingRow{UserID: r.UserID, ItemID: r.ItemID}
		verr := validation.ValidateStruct(&row)
		if verr == nil {
			verr = validation.ValidateVar("rating", r.Value, bounds)
		}
		if verr != nil {
			report.InvalidRatings++
			msg := fmt.Sprintf("rating user=%d item=%d: %s", r.UserID, r.ItemID, verr.Error())
			report.note(msg)
			if opts.Strict {
				return nil, fmt.Errorf("%w: %s", ErrRejectedRow, msg)
			}
			continue
		}

		if _, ok := known[r.ItemID]; !ok {
			report.OrphanedRatings++
			msg := fmt.Sprintf("rating user=%d item=%d: unknown item", r.UserID, r.ItemID)
			report.note(msg)
			if opts.Strict {
				return nil, fmt.Errorf("%w: %s", ErrRejectedRow, msg)
			}
			continue
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}
