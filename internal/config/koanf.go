// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the dotenv file location (default: .env).
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Catalog: CatalogConfig{
			Source:          "csv",
			DataDir:         "data",
			MoviesFile:      "movies.csv",
			RatingsFile:     "ratings.csv",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "reelmatch",
			DuckDBMaxMemory: "1GB",
			DuckDBThreads:   0,
			Strict:          false,
			MinRating:       0.5,
			MaxRating:       5.0,
			LoadTimeout:     5 * time.Minute,
			ReloadInterval:  0, // SIGHUP only
		},
		Recommend: RecommendConfig{
			DefaultNum:        10,
			MaxNum:            100,
			Neighbors:         0,
			DefaultMinRating:  2.5,
			DefaultMaxRating:  5.0,
			NumWorkers:        0,
			ParallelThreshold: 2048,
		},
		Enrichment: EnrichmentConfig{
			Enabled:        false,
			BaseURL:        "https://api.themoviedb.org/3",
			ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
			PlaceholderURL: "https://via.placeholder.com/300x450?text=No+Image",
			Timeout:        5 * time.Second,
			Concurrency:    8,
			RateLimit:      40,
			RateBurst:      10,
			Breaker: BreakerConfig{
				MaxRequests:      3,
				Interval:         60 * time.Second,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
			Cache: CacheConfig{
				Backend:     "memory",
				TTL:         24 * time.Hour,
				NegativeTTL: time.Hour,
				MaxEntries:  10000,
				BadgerPath:  "/data/cache",
				RedisURL:    "redis://localhost:6379/0",
				KeyPrefix:   "reelmatch:tmdb:",
			},
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. .env: exported into the process environment (existing variables win)
//  3. Config File: Optional YAML config file (if exists)
//  4. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv exports variables from the dotenv file. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Catalog
	"catalog_source":          "catalog.source",
	"catalog_data_dir":        "catalog.data_dir",
	"catalog_movies_file":     "catalog.movies_file",
	"catalog_ratings_file":    "catalog.ratings_file",
	"mongo_uri":               "catalog.mongo_uri",
	"mongo_database":          "catalog.mongo_database",
	"duckdb_max_memory":       "catalog.duckdb_max_memory",
	"duckdb_threads":          "catalog.duckdb_threads",
	"catalog_strict":          "catalog.strict",
	"catalog_min_rating":      "catalog.min_rating",
	"catalog_max_rating":      "catalog.max_rating",
	"catalog_load_timeout":    "catalog.load_timeout",
	"catalog_reload_interval": "catalog.reload_interval",

	// Recommendation engine
	"recommend_default_num":        "recommend.default_num",
	"recommend_max_num":            "recommend.max_num",
	"recommend_neighbors":          "recommend.neighbors",
	"recommend_default_min_rating": "recommend.default_min_rating",
	"recommend_default_max_rating": "recommend.default_max_rating",
	"recommend_num_workers":        "recommend.num_workers",
	"recommend_parallel_threshold": "recommend.parallel_threshold",

	// Enrichment
	"enrichment_enabled":         "enrichment.enabled",
	"tmdb_api_key":               "enrichment.tmdb_api_key",
	"tmdb_base_url":              "enrichment.base_url",
	"tmdb_image_base_url":        "enrichment.image_base_url",
	"enrichment_placeholder_url": "enrichment.placeholder_url",
	"enrichment_timeout":         "enrichment.timeout",
	"enrichment_concurrency":     "enrichment.concurrency",
	"tmdb_rate_limit":            "enrichment.rate_limit",
	"tmdb_rate_burst":            "enrichment.rate_burst",
	"tmdb_breaker_max_requests":  "enrichment.breaker.max_requests",
	"tmdb_breaker_interval":      "enrichment.breaker.interval",
	"tmdb_breaker_timeout":       "enrichment.breaker.timeout",
	"tmdb_breaker_failures":      "enrichment.breaker.failure_threshold",
	"cache_backend":              "enrichment.cache.backend",
	"cache_ttl":                  "enrichment.cache.ttl",
	"cache_negative_ttl":         "enrichment.cache.negative_ttl",
	"cache_max_entries":          "enrichment.cache.max_entries",
	"cache_badger_path":          "enrichment.cache.badger_path",
	"redis_url":                  "enrichment.cache.redis_url",
	"cache_key_prefix":           "enrichment.cache.key_prefix",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - TMDB_API_KEY -> enrichment.tmdb_api_key
//   - REDIS_URL -> enrichment.cache.redis_url
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated variables never pollute config
	return ""
}
