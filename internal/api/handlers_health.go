// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelmatch/internal/models"
)

// Health handles GET /api/v1/health. It always answers 200; Status is
// "degraded" until an engine has been built.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	health := models.HealthStatus{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}

	if eng := h.engines.Current(); eng != nil {
		stats := eng.Stats()
		health.EngineReady = true
		health.Catalog = &models.CatalogHealth{
			Items:   stats.Items,
			Users:   stats.Users,
			Ratings: stats.Ratings,
			BuiltAt: stats.BuiltAt,
		}
	} else {
		health.Status = "degraded"
	}

	enrich := &models.EnrichmentHealth{Enabled: h.enricher != nil}
	if h.enricher != nil {
		if h.breaker != nil {
			enrich.BreakerState = h.breaker.State()
		}
		if h.config != nil {
			enrich.CacheBackend = h.config.Enrichment.Cache.Backend
		}
	}
	health.Enrichment = enrich

	respondSuccess(w, r, health, time.Time{})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of the engine.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Time{})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK once an engine is published, 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	ready := h.engines.Current() != nil
	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"engine_ready": ready,
			"uptime":       time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
