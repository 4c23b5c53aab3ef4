// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// buildEngineConfig maps application configuration to engine configuration.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()

	if cfg.Recommend.DefaultNum > 0 {
		ec.Limits.DefaultNum = cfg.Recommend.DefaultNum
	}
	if cfg.Recommend.MaxNum > 0 {
		ec.Limits.MaxNum = cfg.Recommend.MaxNum
	}
	ec.Collaborative.Neighbors = cfg.Recommend.Neighbors
	if cfg.Recommend.NumWorkers > 0 {
		ec.Collaborative.NumWorkers = cfg.Recommend.NumWorkers
	}
	if cfg.Recommend.ParallelThreshold > 0 {
		ec.Collaborative.ParallelThreshold = cfg.Recommend.ParallelThreshold
	}
	ec.MinRating = cfg.Catalog.MinRating
	ec.MaxRating = cfg.Catalog.MaxRating

	return ec
}

// newIndices creates fresh, unbuilt indices. Every build gets its own pair.
func newIndices(ec *recommend.Config) recommend.Indices {
	knn := algorithms.DefaultUserKNNConfig()
	knn.NumWorkers = ec.Collaborative.NumWorkers
	knn.ParallelThreshold = ec.Collaborative.ParallelThreshold

	return recommend.Indices{
		Content:       algorithms.NewTFIDF(),
		Collaborative: algorithms.NewUserKNN(knn),
	}
}

// buildEngine loads a snapshot from store and builds an engine over it.
func buildEngine(ctx context.Context, cfg *config.Config, store catalog.Store) (*recommend.Engine, error) {
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Catalog.LoadTimeout)
	defer cancel()

	snap, report, err := catalog.Load(loadCtx, store, catalog.OptionsFromConfig(&cfg.Catalog))
	metrics.RecordCatalogLoad(cfg.Catalog.Source, report.Duration())
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", cfg.Catalog.Source, err)
	}

	ec := buildEngineConfig(cfg)
	logger := logging.With().Str("component", "recommend").Logger()
	eng, err := recommend.NewEngine(ctx, ec, *snap, newIndices(ec), logger)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return eng, nil
}

// engineBuilder returns the rebuild function used by the catalog service.
func engineBuilder(cfg *config.Config, store catalog.Store) services.BuildFunc {
	return func(ctx context.Context) (*recommend.Engine, error) {
		return buildEngine(ctx, cfg, store)
	}
}

// logEngine logs the size of a freshly built engine.
func logEngine(eng *recommend.Engine) {
	stats := eng.Stats()
	logging.Info().
		Int("items", stats.Items).
		Int("users", stats.Users).
		Int("ratings", stats.Ratings).
		Int("genres", stats.Tags).
		Int("years", stats.Years).
		Dur("build_duration", stats.BuildDuration).
		Msg("Recommendation engine ready")
}
