// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate runs the test from an empty directory so no stray config.yaml or
// .env is picked up, and unsets every mapped variable for the test's duration.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	keys := []string{ConfigPathEnvVar, DotEnvPathEnvVar}
	for key := range envMappings {
		keys = append(keys, strings.ToUpper(key))
	}
	for _, key := range keys {
		// Setenv restores the original value on cleanup.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Catalog.Source != "csv" {
		t.Errorf("Catalog.Source = %q, want csv", cfg.Catalog.Source)
	}
	if cfg.Catalog.ReloadInterval != 0 {
		t.Errorf("Catalog.ReloadInterval = %v, want 0 (disabled)", cfg.Catalog.ReloadInterval)
	}
	if cfg.Recommend.DefaultNum != 10 || cfg.Recommend.MaxNum != 100 {
		t.Errorf("Recommend num limits = %d/%d, want 10/100", cfg.Recommend.DefaultNum, cfg.Recommend.MaxNum)
	}
	if cfg.Recommend.DefaultMinRating != 2.5 || cfg.Recommend.DefaultMaxRating != 5.0 {
		t.Errorf("default rating range = %g-%g, want 2.5-5", cfg.Recommend.DefaultMinRating, cfg.Recommend.DefaultMaxRating)
	}
	if cfg.Enrichment.Enabled {
		t.Error("Enrichment.Enabled should be false by default")
	}
	if cfg.Enrichment.PlaceholderURL != "https://via.placeholder.com/300x450?text=No+Image" {
		t.Errorf("Enrichment.PlaceholderURL = %q", cfg.Enrichment.PlaceholderURL)
	}
	if cfg.Enrichment.Cache.Backend != "memory" {
		t.Errorf("Enrichment.Cache.Backend = %q, want memory", cfg.Enrichment.Cache.Backend)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"CATALOG_SOURCE", "catalog.source"},
		{"MONGO_URI", "catalog.mongo_uri"},
		{"RECOMMEND_NEIGHBORS", "recommend.neighbors"},
		{"TMDB_API_KEY", "enrichment.tmdb_api_key"},
		{"TMDB_BREAKER_FAILURES", "enrichment.breaker.failure_threshold"},
		{"REDIS_URL", "enrichment.cache.redis_url"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"LOG_LEVEL", "logging.level"},
		{"log_level", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := isolate(t)

	t.Run("no config file exists", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		defer os.Remove(path)

		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})

	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		path := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, path)

		if got := findConfigFile(); got != path {
			t.Errorf("findConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("CONFIG_PATH with missing file falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

func TestLoadWithKoanf_EnvVars(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_NEIGHBORS", "25")
	t.Setenv("CATALOG_RELOAD_INTERVAL", "15m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.Neighbors != 25 {
		t.Errorf("Recommend.Neighbors = %d, want 25", cfg.Recommend.Neighbors)
	}
	if cfg.Catalog.ReloadInterval != 15*time.Minute {
		t.Errorf("Catalog.ReloadInterval = %v, want 15m", cfg.Catalog.ReloadInterval)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}

	// Defaults survive for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Catalog.MoviesFile != "movies.csv" {
		t.Errorf("Catalog.MoviesFile = %q, want movies.csv (default)", cfg.Catalog.MoviesFile)
	}
}

func TestLoadWithKoanf_ConfigFileAndEnvOverride(t *testing.T) {
	dir := isolate(t)

	content := `
server:
  port: 8888
  host: "127.0.0.1"
catalog:
  source: mongo
  mongo_uri: "mongodb://mongo.local:27017"
  mongo_database: movies
recommend:
  default_min_rating: 3.0
logging:
  level: warn
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 8888 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server = %s, want 127.0.0.1:8888 (from file)", cfg.Server.Addr())
	}
	if cfg.Catalog.Source != "mongo" || cfg.Catalog.MongoDatabase != "movies" {
		t.Errorf("Catalog = %+v, want mongo/movies", cfg.Catalog)
	}
	if cfg.Recommend.DefaultMinRating != 3.0 {
		t.Errorf("Recommend.DefaultMinRating = %g, want 3", cfg.Recommend.DefaultMinRating)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env override)", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_DotEnv(t *testing.T) {
	dir := isolate(t)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HTTP_PORT=7070\nLOG_FORMAT=console\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070 (from .env)", cfg.Server.Port)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console (from .env)", cfg.Logging.Format)
	}
}

func TestLoadWithKoanf_Validation(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		errMsg  string
	}{
		{name: "invalid port", envVars: map[string]string{"HTTP_PORT": "70000"}, errMsg: "HTTP_PORT"},
		{name: "unknown catalog source", envVars: map[string]string{"CATALOG_SOURCE": "sqlite"}, errMsg: "CATALOG_SOURCE"},
		{name: "bad mongo uri", envVars: map[string]string{"CATALOG_SOURCE": "mongo", "MONGO_URI": "http://x"}, errMsg: "MONGO_URI"},
		{name: "inverted default range", envVars: map[string]string{"RECOMMEND_DEFAULT_MIN_RATING": "4.5", "RECOMMEND_DEFAULT_MAX_RATING": "3"}, errMsg: "RECOMMEND_DEFAULT_MIN_RATING"},
		{name: "enrichment without key", envVars: map[string]string{"ENRICHMENT_ENABLED": "true"}, errMsg: "TMDB_API_KEY"},
		{name: "redis cache with bad url", envVars: map[string]string{"ENRICHMENT_ENABLED": "true", "TMDB_API_KEY": "k", "CACHE_BACKEND": "redis", "REDIS_URL": "tcp://x"}, errMsg: "REDIS_URL"},
		{name: "unknown cache backend", envVars: map[string]string{"ENRICHMENT_ENABLED": "true", "TMDB_API_KEY": "k", "CACHE_BACKEND": "disk"}, errMsg: "CACHE_BACKEND"},
		{name: "bad log level", envVars: map[string]string{"LOG_LEVEL": "verbose"}, errMsg: "LOG_LEVEL"},
		{name: "rate limit window too short", envVars: map[string]string{"RATE_LIMIT_WINDOW": "10ms"}, errMsg: "RATE_LIMIT_WINDOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() expected error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want mention of %s", err, tt.errMsg)
			}
		})
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("development config should not warn")
	}
	cfg.Server.Environment = "production"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("production with wildcard origin should warn")
	}
	cfg.Security.CORSOrigins = []string{"https://movies.example"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origins should not warn")
	}
}
