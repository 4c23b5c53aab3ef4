// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package testinfra starts backing services in Docker for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/catalog/... ./internal/cache/...
//
// Tests call SkipIfNoDocker first so they pass on machines without a
// Docker daemon. Containers are pulled on first use and cached afterwards.
//
//	func TestMongoStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatalf("start mongo: %v", err)
//	    }
//	    testinfra.CleanupContainer(t, mongo)
//	    // use mongo.URI
//	}
package testinfra
