// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/enrichment"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/expr"
)

// recommendTimeout bounds retrieval plus enrichment for one request.
const recommendTimeout = 10 * time.Second

// ContentRecommendations handles GET /api/v1/recommendations/content.
// Returns items whose tags are most similar to the item named by title
// (or item_id), after filtering.
func (h *Handler) ContentRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	eng := h.engineFrom(r)

	req, apiErr := parseContentRequest(r.URL.Query())
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	opts, query, apiErr := h.buildFilter(eng, &req.FilterParams)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	query.Title = req.Title
	query.ItemID = req.ItemID

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	res, err := eng.RecommendByContent(ctx, recommend.ContentQuery{
		Title:  req.Title,
		ItemID: req.ItemID,
		Num:    req.Num,
		Filter: opts,
	})
	if err != nil {
		respondRecommendError(w, r, err)
		return
	}

	h.respondRecommendation(ctx, w, r, res, query, start)
}

// UserRecommendations handles GET /api/v1/recommendations/users/{userID}.
// Returns items rated highest by the users whose ratings are most similar
// to userID, after filtering.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	eng := h.engineFrom(r)

	req, apiErr := parseUserRequest(chi.URLParam(r, "userID"), r.URL.Query())
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	opts, query, apiErr := h.buildFilter(eng, &req.FilterParams)
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}
	query.UserID = req.UserID
	query.Neighbors = req.Neighbors

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	res, err := eng.RecommendByCollaboration(ctx, recommend.CollaborativeQuery{
		UserID:    req.UserID,
		Num:       req.Num,
		Neighbors: req.Neighbors,
		Filter:    opts,
	})
	if err != nil {
		respondRecommendError(w, r, err)
		return
	}

	h.respondRecommendation(ctx, w, r, res, query, start)
}

// buildFilter turns request parameters into engine filter options and the
// echoed effective query.
func (h *Handler) buildFilter(eng *recommend.Engine, p *FilterParams) (recommend.FilterOptions, models.RecommendationQuery, *models.APIError) {
	query := models.RecommendationQuery{
		Num:    effectiveNum(eng.Config(), p.Num),
		Genre:  p.Genre,
		Year:   p.Year,
		Filter: p.Filter,
		Enrich: h.enricher != nil,
	}
	if p.Enrich != nil {
		query.Enrich = *p.Enrich && h.enricher != nil
	}

	opts := recommend.FilterOptions{Genre: p.Genre, Year: p.Year}

	if !p.noRatingRange {
		rr := recommend.RatingRange{
			Min: h.config.Recommend.DefaultMinRating,
			Max: h.config.Recommend.DefaultMaxRating,
		}
		if p.MinRating != nil {
			rr.Min = *p.MinRating
		}
		if p.MaxRating != nil {
			rr.Max = *p.MaxRating
		}
		if err := rr.Validate(); err != nil {
			return opts, query, &models.APIError{
				Code:    ErrCodeValidation,
				Message: "min_rating must not exceed max_rating",
				Details: map[string]interface{}{
					"min_rating": rr.Min,
					"max_rating": rr.Max,
				},
			}
		}
		opts.RatingRange = &rr
		query.MinRating = &rr.Min
		query.MaxRating = &rr.Max
	}

	if p.Filter != "" {
		x, err := expr.Compile(p.Filter)
		if err != nil {
			return opts, query, &models.APIError{
				Code:    ErrCodeInvalidFilter,
				Message: err.Error(),
				Details: map[string]interface{}{"field": "filter"},
			}
		}
		opts.Extra = []recommend.Filter{x}
	}

	return opts, query, nil
}

func (h *Handler) respondRecommendation(ctx context.Context, w http.ResponseWriter, r *http.Request, res *recommend.Result, query models.RecommendationQuery, start time.Time) {
	var items []enrichment.Enriched
	if query.Enrich && len(res.Items) > 0 {
		items = h.enricher.Enrich(ctx, res.Items)
	} else {
		items = enrichment.Placeholder(res.Items, h.config.Enrichment.PlaceholderURL)
	}

	respondSuccess(w, r, models.NewRecommendationResponse(res, query, items), start)
}

func respondRecommendError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, recommend.ErrInvalidRatingRange) {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}
	respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Failed to generate recommendations", err)
}

// effectiveNum mirrors the engine's defaulting and clamping of num.
func effectiveNum(cfg *recommend.Config, num int) int {
	if num <= 0 {
		num = cfg.Limits.DefaultNum
	}
	return min(num, cfg.Limits.MaxNum)
}
