// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// CatalogGenres handles GET /api/v1/catalog/genres.
func (h *Handler) CatalogGenres(w http.ResponseWriter, r *http.Request) {
	genres := h.engineFrom(r).Genres()
	respondSuccess(w, r, models.GenresResponse{
		Genres: append([]string{recommend.AllGenres}, genres...),
	}, time.Time{})
}

// CatalogYears handles GET /api/v1/catalog/years.
func (h *Handler) CatalogYears(w http.ResponseWriter, r *http.Request) {
	years := h.engineFrom(r).Years()
	if years == nil {
		years = []int{}
	}
	respondSuccess(w, r, models.YearsResponse{Years: years}, time.Time{})
}

// CatalogUsers handles GET /api/v1/catalog/users?limit=&offset=.
func (h *Handler) CatalogUsers(w http.ResponseWriter, r *http.Request) {
	req, apiErr := parseListRequest(r.URL.Query())
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	users := h.engineFrom(r).UserIDs()
	page, lo, hi := models.NewPaginationInfo(len(users), req.Limit, req.Offset)
	respondSuccess(w, r, models.UsersResponse{
		Users:      append([]int{}, users[lo:hi]...),
		Pagination: page,
	}, time.Time{})
}

// CatalogTitles handles GET /api/v1/catalog/titles?q=&limit=&offset=.
// q keeps titles containing it, case-insensitively.
func (h *Handler) CatalogTitles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, apiErr := parseListRequest(r.URL.Query())
	if apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	titles := h.engineFrom(r).Titles()
	if req.Query != "" {
		titles = filterTitles(titles, req.Query)
	}

	page, lo, hi := models.NewPaginationInfo(len(titles), req.Limit, req.Offset)
	respondSuccess(w, r, models.TitlesResponse{
		Titles:     append([]string{}, titles[lo:hi]...),
		Pagination: page,
	}, start)
}

// CatalogItem handles GET /api/v1/catalog/items/{itemID}.
func (h *Handler) CatalogItem(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "itemID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		respondAPIError(w, r, http.StatusBadRequest, paramError("itemID", raw, "a positive integer"), nil)
		return
	}

	eng := h.engineFrom(r)
	it, ok := eng.Item(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Item not found", nil)
		return
	}
	respondSuccess(w, r, models.NewItemResponse(&it, eng.RatingStats(id)), time.Time{})
}

// CatalogStats handles GET /api/v1/catalog/stats.
func (h *Handler) CatalogStats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.engineFrom(r).Stats(), time.Time{})
}

func filterTitles(titles []string, q string) []string {
	q = strings.ToLower(q)
	out := titles[:0]
	for _, t := range titles {
		if strings.Contains(strings.ToLower(t), q) {
			out = append(out, t)
		}
	}
	return out
}
