// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBadgerStore_InMemory(t *testing.T) {
	ctx := context.Background()
	s, err := NewBadgerStore("", time.Hour)
	if err != nil {
		t.Fatalf("NewBadgerStore() error = %v", err)
	}
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get(missing) error = %v, want ErrMiss", err)
	}

	if err := s.Set(ctx, "k", []byte(`{"title":"Heat"}`), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != `{"title":"Heat"}` {
		t.Errorf("Get(k) = %q, %v", got, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get() after Delete error = %v, want ErrMiss", err)
	}
	if s.Name() != "badger" {
		t.Errorf("Name() = %q", s.Name())
	}
}

func TestBadgerStore_Persists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewBadgerStore(dir, time.Hour)
	if err != nil {
		t.Fatalf("NewBadgerStore() error = %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewBadgerStore(dir, time.Hour)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Errorf("Get(k) after reopen = %q, %v, want v", got, err)
	}
}

func TestBadgerStore_TTL(t *testing.T) {
	ctx := context.Background()
	s, err := NewBadgerStore("", time.Hour)
	if err != nil {
		t.Fatalf("NewBadgerStore() error = %v", err)
	}
	defer s.Close()

	// Badger TTLs have one second resolution.
	if err := s.Set(ctx, "short", []byte("v"), time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(2100 * time.Millisecond)

	if _, err := s.Get(ctx, "short"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get(short) error = %v, want ErrMiss after expiry", err)
	}
}
