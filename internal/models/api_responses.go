// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope written by every HTTP endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"mode": "content", "outcome": "ok", "items": [...]},
//	  "metadata": {
//	    "timestamp": "2026-03-01T12:00:00Z",
//	    "query_time_ms": 3
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "num must be at most 100",
//	    "details": {"field": "num"}
//	  },
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response timing.
//
// QueryTimeMS covers retrieval, filtering and enrichment. RequestID echoes
// the X-Request-ID header so that clients can quote it in bug reports.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is the structured error body.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid query parameters
//   - INVALID_FILTER: the filter expression does not compile
//   - NOT_FOUND: unknown route or resource
//   - ENGINE_UNAVAILABLE: no engine has been built yet
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: unexpected failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginationInfo describes an offset page of a sorted list.
type PaginationInfo struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"has_more"`
	TotalCount int  `json:"total_count"`
}

// NewPaginationInfo computes the page bounds of a list of total entries.
// It returns the slice bounds [lo, hi) to serve. Offsets past the end yield
// an empty page.
func NewPaginationInfo(total, limit, offset int) (info PaginationInfo, lo, hi int) {
	if offset < 0 {
		offset = 0
	}
	lo = min(offset, total)
	hi = total
	if limit > 0 {
		hi = min(lo+limit, total)
	}
	return PaginationInfo{
		Limit:      limit,
		Offset:     offset,
		HasMore:    hi < total,
		TotalCount: total,
	}, lo, hi
}
