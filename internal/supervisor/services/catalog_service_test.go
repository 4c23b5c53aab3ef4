// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
)

var _ suture.Service = (*CatalogService)(nil)

// buildEngine builds an engine over n items rated by two users.
func buildEngine(t *testing.T, n int) *recommend.Engine {
	t.Helper()
	snap := recommend.Snapshot{}
	for i := 1; i <= n; i++ {
		snap.Items = append(snap.Items, recommend.Item{ID: i, Title: string(rune('A' + i - 1)), Tags: []string{"Drama"}})
		snap.Ratings = append(snap.Ratings,
			recommend.Rating{UserID: 1, ItemID: i, Value: 4},
			recommend.Rating{UserID: 2, ItemID: i, Value: 3},
		)
	}
	eng, err := recommend.NewEngine(context.Background(), nil, snap, recommend.Indices{
		Content:       algorithms.NewTFIDF(),
		Collaborative: algorithms.NewUserKNN(algorithms.DefaultUserKNNConfig()),
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return eng
}

// waitFor polls cond until it holds or a second passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCatalogService_Reload(t *testing.T) {
	first := buildEngine(t, 2)
	next := buildEngine(t, 3)
	buildErr := errors.New("catalog unavailable")

	tests := []struct {
		name         string
		build        BuildFunc
		wantEngine   *recommend.Engine
		wantRebuilds int64
		wantFailures int64
	}{
		{
			name:         "success swaps the engine",
			build:        func(context.Context) (*recommend.Engine, error) { return next, nil },
			wantEngine:   next,
			wantRebuilds: 1,
		},
		{
			name:         "failure keeps the previous engine",
			build:        func(context.Context) (*recommend.Engine, error) { return nil, buildErr },
			wantEngine:   first,
			wantFailures: 1,
		},
		{
			name:         "nil engine counts as a failure",
			build:        func(context.Context) (*recommend.Engine, error) { return nil, nil },
			wantEngine:   first,
			wantFailures: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holder := recommend.NewHolder(first)
			svc := NewCatalogService(holder, tt.build, CatalogServiceConfig{}, zerolog.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- svc.Serve(ctx) }()

			svc.Reload()
			waitFor(t, func() bool { return svc.Rebuilds()+svc.Failures() >= 1 })
			cancel()

			if err := <-done; !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
			if holder.Current() != tt.wantEngine {
				t.Errorf("published engine has %d items, want %d", holder.Current().Stats().Items, tt.wantEngine.Stats().Items)
			}
			if svc.Rebuilds() != tt.wantRebuilds || svc.Failures() != tt.wantFailures {
				t.Errorf("rebuilds/failures = %d/%d, want %d/%d", svc.Rebuilds(), svc.Failures(), tt.wantRebuilds, tt.wantFailures)
			}
		})
	}
}

func TestCatalogService_Interval(t *testing.T) {
	engines := []*recommend.Engine{buildEngine(t, 1), buildEngine(t, 2), buildEngine(t, 3)}
	var calls atomic.Int32

	holder := recommend.NewHolder(engines[0])
	svc := NewCatalogService(holder, func(context.Context) (*recommend.Engine, error) {
		n := int(calls.Add(1))
		return engines[min(n, len(engines)-1)], nil
	}, CatalogServiceConfig{ReloadInterval: 10 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Serve(ctx) }()

	waitFor(t, func() bool { return svc.Rebuilds() >= 2 })
	if got := holder.Current().Stats().Items; got < 2 {
		t.Errorf("published engine has %d items, want a rebuilt one", got)
	}
}

func TestCatalogService_BuildTimeout(t *testing.T) {
	holder := recommend.NewHolder(nil)
	svc := NewCatalogService(holder, func(ctx context.Context) (*recommend.Engine, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, CatalogServiceConfig{BuildTimeout: 20 * time.Millisecond}, zerolog.Nop())

	if svc.rebuild(context.Background(), "test") {
		t.Fatal("rebuild() = true for a build that timed out")
	}
	if holder.Current() != nil {
		t.Error("a failed first build published an engine")
	}
}

func TestCatalogService_Defaults(t *testing.T) {
	svc := NewCatalogService(recommend.NewHolder(nil), nil, CatalogServiceConfig{}, zerolog.Nop())
	if svc.config.BuildTimeout != 30*time.Minute {
		t.Errorf("BuildTimeout = %v, want 30m", svc.config.BuildTimeout)
	}
	if svc.String() != "catalog-service" {
		t.Errorf("String() = %q", svc.String())
	}

	// Pending reload requests collapse.
	svc.Reload()
	svc.Reload()
	if len(svc.reload) != 1 {
		t.Errorf("pending reloads = %d, want 1", len(svc.reload))
	}
}
