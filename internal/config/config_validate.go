// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateEnrichment(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

var validCatalogSources = map[string]bool{
	"csv":    true,
	"mongo":  true,
	"memory": true,
}

// validateCatalog validates the catalog source and its bounds
func (c *Config) validateCatalog() error {
	if !validCatalogSources[c.Catalog.Source] {
		return fmt.Errorf("CATALOG_SOURCE must be one of: csv, mongo, memory")
	}

	switch c.Catalog.Source {
	case "csv":
		if c.Catalog.DataDir == "" {
			return fmt.Errorf("CATALOG_DATA_DIR is required when CATALOG_SOURCE=csv")
		}
		if c.Catalog.MoviesFile == "" || c.Catalog.RatingsFile == "" {
			return fmt.Errorf("CATALOG_MOVIES_FILE and CATALOG_RATINGS_FILE are required when CATALOG_SOURCE=csv")
		}
	case "mongo":
		if err := validateMongoURI(c.Catalog.MongoURI); err != nil {
			return err
		}
		if c.Catalog.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required when CATALOG_SOURCE=mongo")
		}
	}

	if err := validateRatingBounds(c.Catalog.MinRating, c.Catalog.MaxRating, "CATALOG_MIN_RATING", "CATALOG_MAX_RATING"); err != nil {
		return err
	}
	if c.Catalog.ReloadInterval < 0 {
		return fmt.Errorf("CATALOG_RELOAD_INTERVAL must not be negative")
	}
	if c.Catalog.LoadTimeout <= 0 {
		return fmt.Errorf("CATALOG_LOAD_TIMEOUT must be positive")
	}
	return nil
}

// validateRecommend validates engine limits and the default rating range
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultNum < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_NUM must be positive")
	}
	if r.MaxNum < r.DefaultNum {
		return fmt.Errorf("RECOMMEND_MAX_NUM must be >= RECOMMEND_DEFAULT_NUM")
	}
	if r.Neighbors < 0 {
		return fmt.Errorf("RECOMMEND_NEIGHBORS must not be negative")
	}
	if r.NumWorkers < 0 {
		return fmt.Errorf("RECOMMEND_NUM_WORKERS must not be negative")
	}
	if r.ParallelThreshold < 1 {
		return fmt.Errorf("RECOMMEND_PARALLEL_THRESHOLD must be positive")
	}
	return validateRatingBounds(r.DefaultMinRating, r.DefaultMaxRating, "RECOMMEND_DEFAULT_MIN_RATING", "RECOMMEND_DEFAULT_MAX_RATING")
}

// validateEnrichment validates TMDB settings (only if enabled)
func (c *Config) validateEnrichment() error {
	e := c.Enrichment
	if !e.Enabled {
		return nil
	}

	if e.TMDBAPIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required when ENRICHMENT_ENABLED=true")
	}
	if err := validateHTTPURL(e.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(e.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("ENRICHMENT_TIMEOUT must be positive")
	}
	if e.Concurrency < 1 {
		return fmt.Errorf("ENRICHMENT_CONCURRENCY must be positive")
	}
	if e.RateLimit <= 0 || e.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_LIMIT and TMDB_RATE_BURST must be positive")
	}
	if e.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("TMDB_BREAKER_FAILURES must be positive")
	}

	return c.validateCache()
}

var validCacheBackends = map[string]bool{
	"memory": true,
	"badger": true,
	"redis":  true,
	"none":   true,
}

// validateCache validates the enrichment cache backend
func (c *Config) validateCache() error {
	cc := c.Enrichment.Cache
	if !validCacheBackends[cc.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, badger, redis, none")
	}
	if cc.Backend == "none" {
		return nil
	}
	if cc.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	switch cc.Backend {
	case "memory":
		if cc.MaxEntries < 1 {
			return fmt.Errorf("CACHE_MAX_ENTRIES must be positive")
		}
	case "badger":
		if cc.BadgerPath == "" {
			return fmt.Errorf("CACHE_BADGER_PATH is required when CACHE_BACKEND=badger")
		}
	case "redis":
		if err := validateRedisURL(cc.RedisURL); err != nil {
			return err
		}
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates rate limiting bounds
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates log level and format
func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func validateRatingBounds(minRating, maxRating float64, minName, maxName string) error {
	if math.IsNaN(minRating) || math.IsNaN(maxRating) {
		return fmt.Errorf("%s and %s must be numbers", minName, maxName)
	}
	if minRating > maxRating {
		return fmt.Errorf("%s must be <= %s, got %g > %g", minName, maxName, minRating, maxRating)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// ShouldWarnAboutCORS returns true if production traffic accepts any origin.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
