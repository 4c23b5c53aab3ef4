// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// disableRatingRange is the min_rating value that turns the range filter off.
const disableRatingRange = -1

// FilterParams holds the post-filter and sizing parameters shared by both
// recommendation endpoints.
type FilterParams struct {
	Num       int      `param:"num" validate:"min=0,max=1000"`
	Genre     string   `param:"genre" validate:"omitempty,max=100"`
	Year      *int     `param:"year" validate:"omitempty,gte=0,lte=9999"`
	MinRating *float64 `param:"min_rating" validate:"omitempty,gte=0,lte=10"`
	MaxRating *float64 `param:"max_rating" validate:"omitempty,gte=0,lte=10"`
	Filter    string   `param:"filter" validate:"omitempty,max=1024"`
	Enrich    *bool    `param:"enrich"`

	noRatingRange bool
}

// ContentRequest represents the validated query parameters for
// /recommendations/content. Title wins when both selectors are given.
type ContentRequest struct {
	Title  string `param:"title" validate:"required_without=ItemID,omitempty,notblank,max=1000"`
	ItemID int    `param:"item_id" validate:"min=0"`
	FilterParams
}

// UserRequest represents the validated parameters for
// /recommendations/users/{userID}.
type UserRequest struct {
	UserID    int `param:"userID" validate:"gt=0"`
	Neighbors int `param:"neighbors" validate:"min=0,max=1000"`
	FilterParams
}

// ListRequest represents the pagination parameters of the catalog listings.
// Limit 0 returns everything from Offset on.
type ListRequest struct {
	Limit  int    `param:"limit" validate:"min=0,max=100000"`
	Offset int    `param:"offset" validate:"min=0"`
	Query  string `param:"q" validate:"omitempty,max=200"`
}

func parseContentRequest(q url.Values) (*ContentRequest, *models.APIError) {
	req := &ContentRequest{Title: strings.TrimSpace(q.Get("title"))}
	var apiErr *models.APIError
	if req.ItemID, apiErr = intParam(q, "item_id", 0); apiErr != nil {
		return nil, apiErr
	}
	if apiErr = parseFilterParams(q, &req.FilterParams); apiErr != nil {
		return nil, apiErr
	}
	if apiErr = validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

func parseUserRequest(userID string, q url.Values) (*UserRequest, *models.APIError) {
	req := &UserRequest{}
	id, err := strconv.Atoi(userID)
	if err != nil {
		return nil, paramError("userID", userID, "an integer")
	}
	req.UserID = id

	var apiErr *models.APIError
	if req.Neighbors, apiErr = intParam(q, "neighbors", 0); apiErr != nil {
		return nil, apiErr
	}
	if apiErr = parseFilterParams(q, &req.FilterParams); apiErr != nil {
		return nil, apiErr
	}
	if apiErr = validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

func parseListRequest(q url.Values) (*ListRequest, *models.APIError) {
	req := &ListRequest{Query: strings.TrimSpace(q.Get("q"))}
	var apiErr *models.APIError
	if req.Limit, apiErr = intParam(q, "limit", 0); apiErr != nil {
		return nil, apiErr
	}
	if req.Offset, apiErr = intParam(q, "offset", 0); apiErr != nil {
		return nil, apiErr
	}
	if apiErr = validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

func parseFilterParams(q url.Values, p *FilterParams) *models.APIError {
	var apiErr *models.APIError
	if p.Num, apiErr = intParam(q, "num", 0); apiErr != nil {
		return apiErr
	}

	p.Genre = strings.TrimSpace(q.Get("genre"))
	if strings.EqualFold(p.Genre, recommend.AllGenres) {
		p.Genre = ""
	}

	if year := strings.TrimSpace(q.Get("year")); year != "" && !strings.EqualFold(year, "All") {
		y, err := strconv.Atoi(year)
		if err != nil {
			return paramError("year", year, `an integer or "All"`)
		}
		p.Year = &y
	}

	if p.MinRating, apiErr = floatParam(q, "min_rating"); apiErr != nil {
		return apiErr
	}
	if p.MinRating != nil && *p.MinRating == disableRatingRange {
		p.MinRating = nil
		p.noRatingRange = true
	}
	if p.MaxRating, apiErr = floatParam(q, "max_rating"); apiErr != nil {
		return apiErr
	}

	p.Filter = strings.TrimSpace(q.Get("filter"))

	if v := strings.TrimSpace(q.Get("enrich")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return paramError("enrich", v, "a boolean")
		}
		p.Enrich = &b
	}
	return nil
}

// intParam parses an optional integer query parameter.
func intParam(q url.Values, key string, defaultValue int) (int, *models.APIError) {
	value := strings.TrimSpace(q.Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, paramError(key, value, "an integer")
	}
	return n, nil
}

// floatParam parses an optional float query parameter. NaN and infinities
// are rejected.
func floatParam(q url.Values, key string) (*float64, *models.APIError) {
	value := strings.TrimSpace(q.Get(key))
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, paramError(key, value, "a number")
	}
	return &f, nil
}
