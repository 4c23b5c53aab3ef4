// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrichment

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// funcFetcher adapts a function to Fetcher and counts calls.
type funcFetcher struct {
	fn    func(ctx context.Context, title string) (*Metadata, error)
	calls atomic.Int32
}

func (f *funcFetcher) Fetch(ctx context.Context, title string) (*Metadata, error) {
	f.calls.Add(1)
	return f.fn(ctx, title)
}

func failing(err error) *funcFetcher {
	return &funcFetcher{fn: func(context.Context, string) (*Metadata, error) { return nil, err }}
}

func TestBreakerFetcher_OpensAfterConsecutiveFailures(t *testing.T) {
	next := failing(errors.New("tmdb down"))
	b := NewBreakerFetcher(next, &config.BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 3,
	})

	for i := 0; i < 3; i++ {
		if _, err := b.Fetch(context.Background(), "Heat"); errors.Is(err, ErrUnavailable) {
			t.Fatalf("call %d rejected before threshold", i)
		}
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	_, err := b.Fetch(context.Background(), "Heat")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Fetch() while open error = %v, want ErrUnavailable", err)
	}
	if got := next.calls.Load(); got != 3 {
		t.Errorf("next called %d times, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(BreakerName)); got != 2 {
		t.Errorf("circuit_breaker_state = %v, want 2 (open)", got)
	}
}

func TestBreakerFetcher_NotFoundIsNotAFailure(t *testing.T) {
	next := failing(ErrNotFound)
	b := NewBreakerFetcher(next, &config.BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 2,
	})

	for i := 0; i < 10; i++ {
		if _, err := b.Fetch(context.Background(), "Nothing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Fetch() error = %v, want ErrNotFound", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerFetcher_HalfOpenRecovers(t *testing.T) {
	var healthy atomic.Bool
	next := &funcFetcher{fn: func(context.Context, string) (*Metadata, error) {
		if healthy.Load() {
			return &Metadata{Overview: "ok"}, nil
		}
		return nil, errors.New("tmdb down")
	}}
	b := NewBreakerFetcher(next, &config.BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 1,
	})

	_, _ = b.Fetch(context.Background(), "Heat")
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	healthy.Store(true)
	time.Sleep(100 * time.Millisecond)

	md, err := b.Fetch(context.Background(), "Heat")
	if err != nil {
		t.Fatalf("Fetch() after timeout error = %v", err)
	}
	if md.Overview != "ok" {
		t.Errorf("Overview = %q, want ok", md.Overview)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}
