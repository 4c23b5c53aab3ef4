// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"github.com/tomtom215/reelmatch/internal/enrichment"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// RecommendationQuery echoes the effective parameters of a request, after
// defaults were applied.
type RecommendationQuery struct {
	Title     string   `json:"title,omitempty"`
	ItemID    int      `json:"item_id,omitempty"`
	UserID    int      `json:"user_id,omitempty"`
	Num       int      `json:"num"`
	Neighbors int      `json:"neighbors,omitempty"`
	Genre     string   `json:"genre,omitempty"`
	Year      *int     `json:"year,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
	MaxRating *float64 `json:"max_rating,omitempty"`
	Filter    string   `json:"filter,omitempty"`
	Enrich    bool     `json:"enrich"`
}

// RecommendationResponse is the data payload of both recommendation
// endpoints. Outcome is one of ok, unknown_item, unknown_user,
// no_candidates or no_match; Message explains any outcome other than ok.
//
// Items is always a list, empty unless Outcome is ok.
type RecommendationResponse struct {
	Mode       string                `json:"mode"`
	Outcome    string                `json:"outcome"`
	Message    string                `json:"message,omitempty"`
	Query      RecommendationQuery   `json:"query"`
	Candidates int                   `json:"candidates"`
	Neighbors  int                   `json:"neighbors,omitempty"`
	Count      int                   `json:"count"`
	Items      []enrichment.Enriched `json:"items"`
}

// NewRecommendationResponse builds the payload for res. items must be the
// (possibly enriched) items of res, in order.
func NewRecommendationResponse(res *recommend.Result, q RecommendationQuery, items []enrichment.Enriched) *RecommendationResponse {
	if items == nil {
		items = []enrichment.Enriched{}
	}
	return &RecommendationResponse{
		Mode:       res.Mode.String(),
		Outcome:    res.Outcome.String(),
		Message:    res.Outcome.Message(),
		Query:      q,
		Candidates: res.Candidates,
		Neighbors:  res.Neighbors,
		Count:      len(items),
		Items:      items,
	}
}

// ItemResponse describes a single catalog item.
type ItemResponse struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Tags        []string `json:"tags"`
	Year        int      `json:"year,omitempty"`
	MeanRating  *float64 `json:"mean_rating,omitempty"`
	RatingCount int      `json:"rating_count"`
}

// GenresResponse lists the selectable genres, sorted, with
// recommend.AllGenres prepended.
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// YearsResponse lists the distinct release years, ascending.
type YearsResponse struct {
	Years []int `json:"years"`
}

// UsersResponse is a page of rating user ids, ascending.
type UsersResponse struct {
	Users      []int          `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// TitlesResponse is a page of catalog titles, sorted.
type TitlesResponse struct {
	Titles     []string       `json:"titles"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewItemResponse describes it with its rating stats.
func NewItemResponse(it *recommend.Item, stats recommend.RatingStats) *ItemResponse {
	r := &ItemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Tags:        it.Tags,
		Year:        it.Year,
		RatingCount: stats.Count,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if mean, ok := stats.Mean(); ok {
		r.MeanRating = &mean
	}
	return r
}
