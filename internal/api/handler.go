// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/enrichment"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Enricher attaches provider metadata to recommendations. Implementations
// must return one entry per input, in order, and never fail.
type Enricher interface {
	Enrich(ctx context.Context, recs []recommend.Recommendation) []enrichment.Enriched
}

// BreakerStater reports the state of the provider circuit breaker.
type BreakerStater interface {
	State() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handler.go: Handler struct, constructor, engine access (this file)
//   - handlers_health.go: health probes
//   - handlers_recommend.go: both recommendation endpoints
//   - handlers_catalog.go: catalog listings and stats
type Handler struct {
	engines   *recommend.Holder
	config    *config.Config
	enricher  Enricher      // nil when enrichment is disabled
	breaker   BreakerStater // optional
	version   string
	startTime time.Time
}

// NewHandler creates a handler serving the engine published by engines.
//
// Example:
//
//	handler := api.NewHandler(holder, cfg, version)
//	handler.SetEnricher(enricher, breaker)
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(engines *recommend.Holder, cfg *config.Config, version string) *Handler {
	return &Handler{
		engines:   engines,
		config:    cfg,
		version:   version,
		startTime: time.Now(),
	}
}

// SetEnricher enables metadata enrichment. breaker may be nil.
func (h *Handler) SetEnricher(e Enricher, breaker BreakerStater) {
	h.enricher = e
	h.breaker = breaker
}

type engineKey struct{}

// RequireEngine pins the current engine into the request context, or
// answers 503 when none has been built yet. Handlers behind it read the
// engine with engineFrom.
func (h *Handler) RequireEngine(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		eng := h.engines.Current()
		if eng == nil {
			w.Header().Set("Retry-After", "5")
			respondError(w, r, http.StatusServiceUnavailable, ErrCodeEngineUnavailable,
				"The recommendation engine is not ready yet", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), engineKey{}, eng)))
	})
}

// engineFrom returns the engine pinned by RequireEngine, falling back to
// the current one.
func (h *Handler) engineFrom(r *http.Request) *recommend.Engine {
	if eng, ok := r.Context().Value(engineKey{}).(*recommend.Engine); ok {
		return eng
	}
	return h.engines.Current()
}

// NotFound answers unknown routes with an error envelope.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
}
