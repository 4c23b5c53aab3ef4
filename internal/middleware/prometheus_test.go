// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	t.Parallel()

	t.Run("labels by route pattern", func(t *testing.T) {
		t.Parallel()
		r := chi.NewRouter()
		r.Use(PrometheusMetrics)
		r.Get("/mw-test/users/{userID}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		for _, path := range []string{"/mw-test/users/1", "/mw-test/users/2", "/mw-test/users/3"} {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("GET %s: status %d", path, rec.Code)
			}
		}

		got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/mw-test/users/{userID}", "200"))
		if got != 3 {
			t.Errorf("requests for pattern = %v, want 3", got)
		}
	})

	t.Run("records error status", func(t *testing.T) {
		t.Parallel()
		r := chi.NewRouter()
		r.Use(PrometheusMetrics)
		r.Post("/mw-test/fail", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.WriteHeader(http.StatusOK) // superfluous, must not change the label
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mw-test/fail", nil))

		got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("POST", "/mw-test/fail", "500"))
		if got != 1 {
			t.Errorf("500 requests = %v, want 1", got)
		}
	})

	t.Run("implicit 200 when handler only writes body", func(t *testing.T) {
		t.Parallel()
		r := chi.NewRouter()
		r.Use(PrometheusMetrics)
		r.Get("/mw-test/body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mw-test/body", nil))

		got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/mw-test/body", "200"))
		if got != 1 {
			t.Errorf("200 requests = %v, want 1", got)
		}
	})
}

func TestRoutePattern_NoRouter(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	if got := RoutePattern(req); got != UnmatchedRoute {
		t.Errorf("RoutePattern() = %q, want %q", got, UnmatchedRoute)
	}
}
