// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"math"
	"strconv"
)

// AllGenres is the genre value that disables genre filtering.
const AllGenres = "All"

// Filter is a post-retrieval predicate. Filters only remove candidates;
// they never reorder or add.
type Filter interface {
	// Name identifies the filter in logs.
	Name() string

	// Keep reports whether the candidate survives.
	Keep(c *Candidate) bool
}

// GenreFilter keeps items carrying exactly Genre.
type GenreFilter struct {
	Genre string
}

// Name implements Filter.
func (f GenreFilter) Name() string { return "genre" }

// Keep implements Filter.
func (f GenreFilter) Keep(c *Candidate) bool {
	return c.Item.HasTag(f.Genre)
}

// YearFilter keeps items released in Year. Unknown years (0) never match.
type YearFilter struct {
	Year int
}

// Name implements Filter.
func (f YearFilter) Name() string { return "year" }

// Keep implements Filter.
func (f YearFilter) Keep(c *Candidate) bool {
	return c.Item.Year != 0 && c.Item.Year == f.Year
}

// RatingRange is an inclusive mean-rating interval.
type RatingRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Validate rejects inverted or NaN bounds.
func (r RatingRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
		return fmt.Errorf("%w: NaN bound", ErrInvalidRatingRange)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %g > max %g", ErrInvalidRatingRange, r.Min, r.Max)
	}
	return nil
}

// Contains reports whether v lies within the range, both ends inclusive.
func (r RatingRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// String formats the range as "min-max".
func (r RatingRange) String() string {
	return strconv.FormatFloat(r.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(r.Max, 'f', -1, 64)
}

// RatingRangeFilter keeps items whose mean rating lies in Range.
// Items that were never rated are excluded.
type RatingRangeFilter struct {
	Range RatingRange
}

// Name implements Filter.
func (f RatingRangeFilter) Name() string { return "rating_range" }

// Keep implements Filter.
func (f RatingRangeFilter) Keep(c *Candidate) bool {
	return c.HasMean && f.Range.Contains(c.MeanRating)
}

// FilterOptions selects the post-filters for a query. The zero value filters nothing.
type FilterOptions struct {
	// Genre keeps items with this exact tag. Empty or AllGenres disables it.
	Genre string

	// Year keeps items released in this year. Nil disables it.
	Year *int

	// RatingRange keeps items whose mean rating falls inside it. Nil disables it.
	RatingRange *RatingRange

	// Extra filters run after the built-in ones, in order.
	Extra []Filter
}

// Validate checks the filter inputs.
func (o *FilterOptions) Validate() error {
	if o.RatingRange != nil {
		return o.RatingRange.Validate()
	}
	return nil
}

// Filters returns the active pipeline: genre, year, rating range, extras.
func (o *FilterOptions) Filters() []Filter {
	filters := make([]Filter, 0, 3+len(o.Extra))
	if o.Genre != "" && o.Genre != AllGenres {
		filters = append(filters, GenreFilter{Genre: o.Genre})
	}
	if o.Year != nil {
		filters = append(filters, YearFilter{Year: *o.Year})
	}
	if o.RatingRange != nil {
		filters = append(filters, RatingRangeFilter{Range: *o.RatingRange})
	}
	return append(filters, o.Extra...)
}

// ApplyFilters returns the candidates that pass every filter, in input order.
// The input slice is not modified.
func ApplyFilters(candidates []Candidate, filters []Filter) []Candidate {
	out := make([]Candidate, 0, len(candidates))
next:
	for i := range candidates {
		for _, f := range filters {
			if !f.Keep(&candidates[i]) {
				continue next
			}
		}
		out = append(out, candidates[i])
	}
	return out
}

// MergeStats attaches each candidate's mean rating from stats, in place.
func MergeStats(candidates []Candidate, stats map[int]RatingStats) {
	for i := range candidates {
		s := stats[candidates[i].Item.ID]
		candidates[i].RatingCount = s.Count
		candidates[i].MeanRating, candidates[i].HasMean = s.Mean()
	}
}
