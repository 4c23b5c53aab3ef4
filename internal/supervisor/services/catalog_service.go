// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// defaultBuildTimeout bounds one catalog load plus engine build.
const defaultBuildTimeout = 30 * time.Minute

// BuildFunc loads the catalog and builds a complete engine from it.
type BuildFunc func(ctx context.Context) (*recommend.Engine, error)

// CatalogServiceConfig configures engine rebuilds.
type CatalogServiceConfig struct {
	// ReloadInterval rebuilds periodically when > 0.
	ReloadInterval time.Duration

	// BuildTimeout bounds a single rebuild. Default: 30m.
	BuildTimeout time.Duration

	// WatchSIGHUP rebuilds on SIGHUP.
	WatchSIGHUP bool
}

// CatalogService rebuilds the recommendation engine on reload triggers and
// publishes it through a Holder. A failed rebuild leaves the published
// engine untouched.
type CatalogService struct {
	holder *recommend.Holder
	build  BuildFunc
	config CatalogServiceConfig
	logger zerolog.Logger

	reload chan struct{}

	rebuilds atomic.Int64
	failures atomic.Int64
}

// NewCatalogService creates a catalog service. The first engine is expected
// to be in holder already.
func NewCatalogService(holder *recommend.Holder, build BuildFunc, cfg CatalogServiceConfig, logger zerolog.Logger) *CatalogService {
	if cfg.BuildTimeout <= 0 {
		cfg.BuildTimeout = defaultBuildTimeout
	}
	return &CatalogService{
		holder: holder,
		build:  build,
		config: cfg,
		logger: logger.With().Str("service", "catalog").Logger(),
		reload: make(chan struct{}, 1),
	}
}

// Reload requests a rebuild. Requests made while one is pending collapse
// into it.
func (s *CatalogService) Reload() {
	select {
	case s.reload <- struct{}{}:
	default:
	}
}

// Serve implements suture.Service.
func (s *CatalogService) Serve(ctx context.Context) error {
	var hup chan os.Signal
	if s.config.WatchSIGHUP {
		hup = make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
	}

	var tick <-chan time.Time
	if s.config.ReloadInterval > 0 {
		ticker := time.NewTicker(s.config.ReloadInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Info().
		Bool("sighup", s.config.WatchSIGHUP).
		Dur("reload_interval", s.config.ReloadInterval).
		Msg("catalog service running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-hup:
			s.rebuild(ctx, "sighup")
		case <-tick:
			s.rebuild(ctx, "interval")
		case <-s.reload:
			s.rebuild(ctx, "manual")
		}
	}
}

// rebuild builds a new engine and swaps it in. It reports whether the swap
// happened.
func (s *CatalogService) rebuild(ctx context.Context, trigger string) bool {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	ctx = logging.ContextWithLogger(ctx, s.logger.With().Str("trigger", trigger).Logger())
	logger := logging.Ctx(ctx)

	buildCtx, cancel := context.WithTimeout(ctx, s.config.BuildTimeout)
	defer cancel()

	logger.Info().Msg("rebuilding recommendation engine")
	start := time.Now()

	eng, err := s.build(buildCtx)
	if err == nil && eng == nil {
		err = recommend.ErrEmptyCatalog
	}
	if err != nil {
		s.failures.Add(1)
		metrics.RecordEngineBuild(time.Since(start), 0, 0, 0, 0, err)
		logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("engine rebuild failed; keeping previous engine")
		return false
	}

	prev := s.holder.Swap(eng)
	s.rebuilds.Add(1)

	ev := logger.Info().Dur("duration", time.Since(start)).Int("items", eng.Stats().Items)
	if prev != nil {
		ev = ev.Int("previous_items", prev.Stats().Items)
	}
	ev.Msg("recommendation engine swapped")
	return true
}

// Rebuilds returns the number of successful rebuilds.
func (s *CatalogService) Rebuilds() int64 {
	return s.rebuilds.Load()
}

// Failures returns the number of failed rebuilds.
func (s *CatalogService) Failures() int64 {
	return s.failures.Load()
}

// String identifies the service in supervisor events.
func (s *CatalogService) String() string {
	return "catalog-service"
}
