// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs the long-lived services of ReelMatch under a
suture v4 supervisor tree.

# Layout

	RootSupervisor ("reelmatch")
	├── CatalogSupervisor ("catalog-layer")
	│   └── CatalogService (SIGHUP and periodic engine rebuilds)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer restarts its own services with exponential backoff. The first
engine is built before the tree starts, so the catalog layer only ever
replaces a working engine.

# Logging

Supervisor events (service panics, restarts, backoff) go through
sutureslog, fed by the zerolog-backed slog logger from
logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}
	tree.AddCatalogService(services.NewCatalogService(holder, build, services.CatalogServiceConfig{
	    ReloadInterval: cfg.Catalog.ReloadInterval,
	    WatchSIGHUP:    true,
	}, logging.With().Str("component", "catalog").Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tree.Serve(ctx)

See the services subpackage for the service wrappers.
*/
package supervisor
