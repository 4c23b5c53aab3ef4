// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/tomtom215/reelmatch/internal/config"
)

// Open creates the Store selected by cfg.Source.
func Open(ctx context.Context, cfg *config.CatalogConfig) (Store, error) {
	switch cfg.Source {
	case "csv":
		return NewDuckDBStore(DuckDBConfig{
			MoviesPath:  filepath.Join(cfg.DataDir, cfg.MoviesFile),
			RatingsPath: filepath.Join(cfg.DataDir, cfg.RatingsFile),
			MaxMemory:   cfg.DuckDBMaxMemory,
			Threads:     cfg.DuckDBThreads,
		})
	case "mongo":
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case "memory":
		return NewDemoStore(), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// OptionsFromConfig maps catalog configuration to load options.
func OptionsFromConfig(cfg *config.CatalogConfig) Options {
	return Options{
		Strict:    cfg.Strict,
		MinRating: cfg.MinRating,
		MaxRating: cfg.MaxRating,
	}
}
