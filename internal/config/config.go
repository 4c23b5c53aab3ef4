// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package config loads application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. .env: Optional dotenv file, exported into the process environment
//  3. Config File: Optional YAML config file (config.yaml or CONFIG_PATH)
//  4. Environment Variables: Override any mapped setting
//
// Only environment variables listed in the env mapping are read. Unrelated
// variables in the process environment never leak into the configuration.
package config

import (
	"time"
)

// Config holds all application configuration.
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Enrichment EnrichmentConfig `koanf:"enrichment"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// CatalogConfig selects and tunes the catalog store.
//
// Environment Variables:
//   - CATALOG_SOURCE: csv, mongo or memory (default: csv)
//   - CATALOG_DATA_DIR: directory holding the CSV files (default: data)
//   - CATALOG_MOVIES_FILE / CATALOG_RATINGS_FILE: file names inside the data dir
//   - MONGO_URI / MONGO_DATABASE: Mongo connection for the mongo source
//   - CATALOG_STRICT: fail the load on any rejected row (default: false)
//   - CATALOG_RELOAD_INTERVAL: periodic rebuild, 0 disables (default: 0)
type CatalogConfig struct {
	Source      string `koanf:"source"`
	DataDir     string `koanf:"data_dir"`
	MoviesFile  string `koanf:"movies_file"`
	RatingsFile string `koanf:"ratings_file"`

	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`

	// DuckDB settings for the csv source.
	DuckDBMaxMemory string `koanf:"duckdb_max_memory"`
	DuckDBThreads   int    `koanf:"duckdb_threads"` // 0 = runtime.NumCPU()

	Strict    bool    `koanf:"strict"`
	MinRating float64 `koanf:"min_rating"`
	MaxRating float64 `koanf:"max_rating"`

	LoadTimeout    time.Duration `koanf:"load_timeout"`
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// RecommendConfig holds recommendation engine and query defaults.
type RecommendConfig struct {
	// DefaultNum is used when a request leaves num unset.
	DefaultNum int `koanf:"default_num"`
	MaxNum     int `koanf:"max_num"`

	// Neighbors is the number of similar users aggregated in collaborative
	// mode. 0 uses the requested num.
	Neighbors int `koanf:"neighbors"`

	// DefaultMinRating and DefaultMaxRating form the rating range applied
	// when a request does not name one.
	DefaultMinRating float64 `koanf:"default_min_rating"`
	DefaultMaxRating float64 `koanf:"default_max_rating"`

	NumWorkers        int `koanf:"num_workers"` // 0 = runtime.NumCPU()
	ParallelThreshold int `koanf:"parallel_threshold"`
}

// EnrichmentConfig controls poster and overview lookups against TMDB.
//
// Environment Variables:
//   - ENRICHMENT_ENABLED: enable lookups (default: false)
//   - TMDB_API_KEY: TMDB v3 API key (required when enabled)
//   - ENRICHMENT_TIMEOUT: per-item deadline (default: 5s)
//   - ENRICHMENT_CONCURRENCY: parallel lookups per request (default: 8)
type EnrichmentConfig struct {
	Enabled        bool          `koanf:"enabled"`
	TMDBAPIKey     string        `koanf:"tmdb_api_key"`
	BaseURL        string        `koanf:"base_url"`
	ImageBaseURL   string        `koanf:"image_base_url"`
	PlaceholderURL string        `koanf:"placeholder_url"`
	Timeout        time.Duration `koanf:"timeout"`
	Concurrency    int           `koanf:"concurrency"`

	// RateLimit is the sustained request rate in requests per second.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	Breaker BreakerConfig `koanf:"breaker"`
	Cache   CacheConfig   `koanf:"cache"`
}

// BreakerConfig configures the TMDB circuit breaker.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"` // requests allowed while half-open
	Interval         time.Duration `koanf:"interval"`     // closed-state counter reset
	Timeout          time.Duration `koanf:"timeout"`      // open-state duration
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// CacheConfig selects the enrichment cache backend.
type CacheConfig struct {
	Backend     string        `koanf:"backend"` // memory, badger, redis, none
	TTL         time.Duration `koanf:"ttl"`
	NegativeTTL time.Duration `koanf:"negative_ttl"`
	MaxEntries  int           `koanf:"max_entries"`
	BadgerPath  string        `koanf:"badger_path"`
	RedisURL    string        `koanf:"redis_url"`
	KeyPrefix   string        `koanf:"key_prefix"`
}

// SecurityConfig holds HTTP hardening settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration using the layered koanf loader.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the listen address for the HTTP server.
func (s *ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
