// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import "time"

// HealthStatus is the payload of GET /api/v1/health.
//
// Status is "healthy" when an engine is published and "degraded" otherwise.
type HealthStatus struct {
	Status      string            `json:"status"`
	Version     string            `json:"version"`
	Uptime      float64           `json:"uptime"` // seconds
	EngineReady bool              `json:"engine_ready"`
	Catalog     *CatalogHealth    `json:"catalog,omitempty"`
	Enrichment  *EnrichmentHealth `json:"enrichment,omitempty"`
}

// CatalogHealth summarizes the published engine.
type CatalogHealth struct {
	Items   int       `json:"items"`
	Users   int       `json:"users"`
	Ratings int       `json:"ratings"`
	BuiltAt time.Time `json:"built_at"`
}

// EnrichmentHealth reports the metadata provider state.
type EnrichmentHealth struct {
	Enabled      bool   `json:"enabled"`
	BreakerState string `json:"breaker_state,omitempty"` // closed, half-open, open
	CacheBackend string `json:"cache_backend,omitempty"`
}
