// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package services provides suture.Service wrappers for ReelMatch components.

Each wrapper implements suture's Service interface

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer, so supervisor events name the service.

# HTTPServerService

Runs an HTTPServer (satisfied by *http.Server). ListenAndServe runs in a
goroutine; a listen error is returned so the supervisor restarts the
server, and context cancellation triggers Shutdown with a bounded drain.

# CatalogService

Rebuilds the recommendation engine through a BuildFunc and publishes it
with recommend.Holder.Swap. Triggers:
  - SIGHUP, when WatchSIGHUP is set
  - a ticker, when ReloadInterval > 0
  - Reload(), for callers inside the process

A failed or timed-out rebuild is logged and counted in
engine_build_errors_total; the previous engine keeps serving.
*/
package services
