// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("catalog_source", cfg.Catalog.Source).
		Str("environment", cfg.Server.Environment).
		Msg("Starting ReelMatch")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := catalog.Open(ctx, &cfg.Catalog)
	if err != nil {
		logging.Fatal().Err(err).Str("source", cfg.Catalog.Source).Msg("Failed to open catalog store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog store")
		}
	}()

	// The first engine is built before the server starts listening. An
	// empty catalog or one without raters is fatal.
	eng, err := buildEngine(ctx, cfg, store)
	if err != nil {
		if errors.Is(err, recommend.ErrEmptyCatalog) || errors.Is(err, recommend.ErrNoUsers) {
			logging.Error().Err(err).Msg("Catalog has nothing to recommend")
		}
		_ = store.Close()
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}
	logEngine(eng)
	holder := recommend.NewHolder(eng)

	enrich, err := initEnrichment(&cfg.Enrichment)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize enrichment")
	}
	defer func() {
		if err := enrich.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing enrichment cache")
		}
	}()

	handler := api.NewHandler(holder, cfg, version)
	if enrich != nil {
		handler.SetEnricher(enrich.Enricher, enrich.Breaker)
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}

	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddCatalogService(services.NewCatalogService(holder, engineBuilder(cfg, store), services.CatalogServiceConfig{
		ReloadInterval: cfg.Catalog.ReloadInterval,
		BuildTimeout:   cfg.Catalog.LoadTimeout,
		WatchSIGHUP:    true,
	}, logging.WithComponent("catalog")))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")

	// Serve returns once SIGINT or SIGTERM cancels ctx and every service
	// has stopped or timed out.
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("ReelMatch stopped gracefully")
}
