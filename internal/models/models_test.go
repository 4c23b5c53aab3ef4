// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/enrichment"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

func TestNewPaginationInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		total, limit   int
		offset         int
		wantLo, wantHi int
		wantMore       bool
	}{
		{name: "first page", total: 10, limit: 3, offset: 0, wantLo: 0, wantHi: 3, wantMore: true},
		{name: "middle page", total: 10, limit: 3, offset: 3, wantLo: 3, wantHi: 6, wantMore: true},
		{name: "last partial page", total: 10, limit: 3, offset: 9, wantLo: 9, wantHi: 10, wantMore: false},
		{name: "exact end", total: 9, limit: 3, offset: 6, wantLo: 6, wantHi: 9, wantMore: false},
		{name: "offset past end", total: 5, limit: 3, offset: 20, wantLo: 5, wantHi: 5, wantMore: false},
		{name: "negative offset", total: 5, limit: 2, offset: -4, wantLo: 0, wantHi: 2, wantMore: true},
		{name: "no limit", total: 5, limit: 0, offset: 1, wantLo: 1, wantHi: 5, wantMore: false},
		{name: "empty list", total: 0, limit: 10, offset: 0, wantLo: 0, wantHi: 0, wantMore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info, lo, hi := NewPaginationInfo(tt.total, tt.limit, tt.offset)
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("bounds = [%d, %d), want [%d, %d)", lo, hi, tt.wantLo, tt.wantHi)
			}
			if info.HasMore != tt.wantMore {
				t.Errorf("HasMore = %v, want %v", info.HasMore, tt.wantMore)
			}
			if info.TotalCount != tt.total {
				t.Errorf("TotalCount = %d, want %d", info.TotalCount, tt.total)
			}
		})
	}
}

func TestNewRecommendationResponse(t *testing.T) {
	t.Parallel()

	t.Run("ok outcome has no message", func(t *testing.T) {
		res := &recommend.Result{
			Mode:       recommend.ModeContent,
			Outcome:    recommend.OutcomeOK,
			Candidates: 4,
		}
		items := enrichment.Placeholder([]recommend.Recommendation{
			{ItemID: 2, Title: "Jumanji (1995)", Tags: []string{"Adventure"}},
		}, "")

		resp := NewRecommendationResponse(res, RecommendationQuery{Title: "Toy Story (1995)", Num: 5}, items)
		if resp.Mode != "content" || resp.Outcome != "ok" {
			t.Errorf("mode/outcome = %s/%s, want content/ok", resp.Mode, resp.Outcome)
		}
		if resp.Message != "" {
			t.Errorf("Message = %q, want empty", resp.Message)
		}
		if resp.Count != 1 || resp.Candidates != 4 {
			t.Errorf("Count/Candidates = %d/%d, want 1/4", resp.Count, resp.Candidates)
		}
	})

	t.Run("empty outcome serializes an empty list", func(t *testing.T) {
		res := &recommend.Result{Mode: recommend.ModeCollaborative, Outcome: recommend.OutcomeUnknownUser}

		resp := NewRecommendationResponse(res, RecommendationQuery{UserID: 99}, nil)
		if resp.Message != recommend.OutcomeUnknownUser.Message() {
			t.Errorf("Message = %q", resp.Message)
		}

		data, err := json.Marshal(resp)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !strings.Contains(string(data), `"items":[]`) {
			t.Errorf("items not serialized as empty list: %s", data)
		}
		if !strings.Contains(string(data), `"outcome":"unknown_user"`) {
			t.Errorf("outcome missing: %s", data)
		}
	})
}

func TestNewItemResponse(t *testing.T) {
	t.Parallel()

	it := &recommend.Item{ID: 7, Title: "Sabrina (1995)", Year: 1995}

	unrated := NewItemResponse(it, recommend.RatingStats{})
	if unrated.MeanRating != nil {
		t.Errorf("MeanRating = %v, want nil for unrated item", *unrated.MeanRating)
	}
	if unrated.Tags == nil {
		t.Error("Tags is nil, want empty slice")
	}

	rated := NewItemResponse(it, recommend.RatingStats{Sum: 7, Count: 2})
	if rated.MeanRating == nil || *rated.MeanRating != 3.5 {
		t.Errorf("MeanRating = %v, want 3.5", rated.MeanRating)
	}
	if rated.RatingCount != 2 {
		t.Errorf("RatingCount = %d, want 2", rated.RatingCount)
	}
}

func TestAPIResponseEnvelope(t *testing.T) {
	t.Parallel()

	resp := APIResponse{
		Status: StatusError,
		Error:  &APIError{Code: "VALIDATION_ERROR", Message: "num must be at most 100"},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["status"] != "error" {
		t.Errorf("status = %v", decoded["status"])
	}
	errBody, ok := decoded["error"].(map[string]interface{})
	if !ok || errBody["code"] != "VALIDATION_ERROR" {
		t.Errorf("error = %v", decoded["error"])
	}
	if _, ok := decoded["metadata"]; !ok {
		t.Error("metadata missing")
	}
}
