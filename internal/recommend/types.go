// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"time"
)

// Item represents a catalog entry with the metadata used for retrieval.
type Item struct {
	// ID is the unique item identifier.
	ID int `json:"id"`

	// Title is the display title. Unique within a snapshot and usable as
	// a lookup key.
	Title string `json:"title"`

	// Tags are categorical labels (genres). Matched exactly by the genre filter.
	Tags []string `json:"tags"`

	// Year is the release year. Zero means unknown.
	Year int `json:"year"`
}

// HasTag reports whether the item carries exactly the given tag.
func (it *Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Rating is a single observation of a user rating an item.
// Duplicate (user, item) observations are allowed and all of them count.
type Rating struct {
	UserID int     `json:"user_id"`
	ItemID int     `json:"item_id"`
	Value  float64 `json:"rating"`
}

// Snapshot is a complete, static catalog used to build an Engine.
type Snapshot struct {
	Items   []Item
	Ratings []Rating
}

// Neighbor is a nearest-neighbor hit in either vector space.
type Neighbor struct {
	// ID is an item id (content index) or a user id (collaborative index).
	ID int `json:"id"`

	// Distance is the cosine distance to the query vector, in [0, 1].
	Distance float64 `json:"distance"`
}

// ItemScore is an aggregated collaborative score for one item.
type ItemScore struct {
	ItemID int `json:"item_id"`

	// Score is the mean rating across every neighbor observation of the item.
	Score float64 `json:"score"`

	// Count is the number of neighbor observations behind Score.
	Count int `json:"count"`
}

// RatingStats accumulates observations for one item.
type RatingStats struct {
	Sum   float64
	Count int
}

// Mean returns the arithmetic mean, or false when there are no observations.
func (s RatingStats) Mean() (float64, bool) {
	if s.Count == 0 {
		return 0, false
	}
	return s.Sum / float64(s.Count), true
}

// Candidate is an item moving through the post-filter pipeline.
type Candidate struct {
	Item Item

	// Score is the retrieval score: similarity (1 - distance) in content
	// mode, mean neighbor rating in collaborative mode.
	Score float64

	// Distance is the cosine distance in content mode. Zero in collaborative mode.
	Distance float64

	// Support is the number of neighbor observations in collaborative mode.
	Support int

	// MeanRating is the item's mean rating over all observations. Only
	// meaningful when HasMean is true.
	MeanRating  float64
	RatingCount int
	HasMean     bool
}

// Mode identifies a retrieval strategy.
type Mode int

const (
	// ModeContent retrieves items similar to a chosen item by tags.
	ModeContent Mode = iota
	// ModeCollaborative retrieves items favored by similar users.
	ModeCollaborative
)

// String returns the mode name used in logs, metrics and API responses.
func (m Mode) String() string {
	switch m {
	case ModeContent:
		return "content"
	case ModeCollaborative:
		return "collaborative"
	default:
		return "unknown"
	}
}

// Outcome classifies a recommendation result. Only OutcomeOK carries items.
type Outcome int

const (
	// OutcomeOK means at least one item survived filtering.
	OutcomeOK Outcome = iota
	// OutcomeUnknownItem means the query title or id is not in the catalog.
	OutcomeUnknownItem
	// OutcomeUnknownUser means the query user has no row in the rating matrix.
	OutcomeUnknownUser
	// OutcomeNoCandidates means retrieval itself produced nothing.
	OutcomeNoCandidates
	// OutcomeNoMatch means candidates existed but the filters removed all of them.
	OutcomeNoMatch
)

// String returns the machine-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeUnknownItem:
		return "unknown_item"
	case OutcomeUnknownUser:
		return "unknown_user"
	case OutcomeNoCandidates:
		return "no_candidates"
	case OutcomeNoMatch:
		return "no_match"
	default:
		return "unknown"
	}
}

// Message returns a human-readable explanation for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeUnknownItem:
		return "The selected item is not in the catalog."
	case OutcomeUnknownUser:
		return "The selected user has no ratings in the catalog."
	case OutcomeNoCandidates:
		return "No similar items were found."
	case OutcomeNoMatch:
		return "No recommendations match the selected filters."
	default:
		return ""
	}
}

// Recommendation is a single entry of a recommendation result.
type Recommendation struct {
	ItemID int      `json:"item_id"`
	Title  string   `json:"title"`
	Tags   []string `json:"tags"`
	Year   int      `json:"year,omitempty"`

	// Score is the similarity (content) or mean neighbor rating (collaborative).
	Score float64 `json:"score"`

	// Distance is the cosine distance to the query item (content mode only).
	Distance float64 `json:"distance,omitempty"`

	// Support is the number of neighbor observations (collaborative mode only).
	Support int `json:"support,omitempty"`

	// MeanRating is nil when the item has never been rated.
	MeanRating  *float64 `json:"mean_rating,omitempty"`
	RatingCount int      `json:"rating_count"`
}

// Result is the response of either facade entry point.
type Result struct {
	Mode    Mode             `json:"-"`
	Outcome Outcome          `json:"-"`
	Items   []Recommendation `json:"items"`

	// Candidates is the number of items retrieved before filtering.
	Candidates int `json:"candidates"`

	// Neighbors is the neighbor count used in collaborative mode.
	Neighbors int `json:"neighbors,omitempty"`
}

// Empty reports whether the result carries no items.
func (r *Result) Empty() bool {
	return len(r.Items) == 0
}

// ContentQuery asks for items similar to a chosen item.
type ContentQuery struct {
	// Title selects the query item. Takes precedence over ItemID.
	Title string

	// ItemID selects the query item when Title is empty.
	ItemID int

	// Num is the neighbor count before filtering. Zero uses the default.
	Num int

	Filter FilterOptions
}

// CollaborativeQuery asks for items favored by users similar to UserID.
type CollaborativeQuery struct {
	UserID int

	// Num is the number of aggregated items before filtering. Zero uses the default.
	Num int

	// Neighbors overrides the configured neighbor count. Zero uses the config.
	Neighbors int

	Filter FilterOptions
}

// ContentIndex answers nearest-item queries over tag vectors.
type ContentIndex interface {
	// Name returns the index name for logging and metrics.
	Name() string

	// Build computes all item vectors from scratch.
	Build(ctx context.Context, items []Item) error

	// Nearest returns up to k items closest to itemID, excluding itemID,
	// ordered by ascending distance and then ascending id. Unknown ids
	// yield nil.
	Nearest(itemID, k int) []Neighbor

	// Distance returns the cosine distance between two items.
	Distance(a, b int) (float64, bool)

	// Len returns the number of indexed items.
	Len() int
}

// CollaborativeIndex answers nearest-user queries over rating vectors and
// aggregates neighbor opinions.
type CollaborativeIndex interface {
	// Name returns the index name for logging and metrics.
	Name() string

	// Build computes the user-item matrix from scratch.
	Build(ctx context.Context, ratings []Rating) error

	// NearestUsers returns up to k users closest to userID, excluding
	// userID, ordered by ascending distance and then ascending id.
	NearestUsers(userID, k int) []Neighbor

	// Scores returns up to topN items by descending mean neighbor rating,
	// ties broken by ascending item id.
	Scores(userID, k, topN int) []ItemScore

	// Distance returns the cosine distance between two users.
	Distance(a, b int) (float64, bool)

	// UserIDs returns the sorted distinct user ids.
	UserIDs() []int

	// Users returns the number of matrix rows.
	Users() int
}

// Indices groups the two index implementations handed to NewEngine.
type Indices struct {
	Content       ContentIndex
	Collaborative CollaborativeIndex
}

// EngineStats describes a built engine.
type EngineStats struct {
	Items         int           `json:"items"`
	Users         int           `json:"users"`
	Ratings       int           `json:"ratings"`
	Tags          int           `json:"tags"`
	Years         int           `json:"years"`
	ContentIndex  string        `json:"content_index"`
	UserIndex     string        `json:"collaborative_index"`
	BuiltAt       time.Time     `json:"built_at"`
	BuildDuration time.Duration `json:"build_duration_ns"`
}
