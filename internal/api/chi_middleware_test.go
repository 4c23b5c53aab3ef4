// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

func TestRateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security = config.SecurityConfig{RateLimitReqs: 2, RateLimitWindow: time.Minute}
	srv := newTestServer(NewHandler(recommend.NewHolder(newTestEngine(t)), cfg, "test"))

	for i := 0; i < 2; i++ {
		rec, _ := doGet(t, srv, "/api/v1/catalog/genres")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec, env := doGet(t, srv, "/api/v1/catalog/genres")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeRateLimited {
		t.Errorf("error = %+v, want RATE_LIMIT_EXCEEDED", env.Error)
	}

	// Health has its own budget.
	rec, _ = doGet(t, srv, "/api/v1/health/live")
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	t.Parallel()

	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute, RateLimitDisabled: true})
	h := mw.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("request %d: status = %d, want 204", i, rec.Code)
		}
	}
}

func TestRouter_RequestID(t *testing.T) {
	t.Parallel()
	srv := newTestServer(NewHandler(recommend.NewHolder(newTestEngine(t)), testConfig(), "test"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/years", nil)
	req.Header.Set("X-Request-ID", "trace-abc-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "trace-abc-123" {
		t.Errorf("X-Request-ID = %q, want trace-abc-123", got)
	}
	if !strings.Contains(rec.Body.String(), `"request_id":"trace-abc-123"`) {
		t.Errorf("body does not carry the request id: %s", rec.Body.String())
	}
}

func TestRouter_Headers(t *testing.T) {
	t.Parallel()
	srv := newTestServer(NewHandler(recommend.NewHolder(newTestEngine(t)), testConfig(), "test"))

	rec, _ := doGet(t, srv, "/api/v1/catalog/genres")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Header().Get("ETag") == "" || rec.Header().Get("Cache-Control") != "public, max-age=60" {
		t.Errorf("ETag = %q, Cache-Control = %q", rec.Header().Get("ETag"), rec.Header().Get("Cache-Control"))
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security.CORSOrigins = []string{"https://movies.example"}
	srv := newTestServer(NewHandler(recommend.NewHolder(newTestEngine(t)), cfg, "test"))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/catalog/genres", nil)
	req.Header.Set("Origin", "https://movies.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://movies.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()
	srv := newTestServer(NewHandler(recommend.NewHolder(newTestEngine(t)), testConfig(), "test"))

	rec, env := doGet(t, srv, "/api/v1/nothing-here")
	if rec.Code != http.StatusNotFound || env.Status != models.StatusError || env.Error.Code != ErrCodeNotFound {
		t.Errorf("404 = %d %+v", rec.Code, env.Error)
	}

	post := httptest.NewRecorder()
	srv.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/genres", nil))
	if post.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", post.Code)
	}
	if !strings.Contains(post.Body.String(), ErrCodeMethodNotAllowed) {
		t.Errorf("405 body = %s", post.Body.String())
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	srv := newTestServer(NewHandler(recommend.NewHolder(newTestEngine(t)), testConfig(), "test"))

	doGet(t, srv, "/api/v1/recommendations/users/10?num=1")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `endpoint="/api/v1/recommendations/users/{userID}"`) {
		t.Errorf("metrics output lacks the route-pattern label")
	}
}
