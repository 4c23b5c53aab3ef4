// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrichment

import (
	"context"
	"errors"
	"testing"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Heat (1995)", "Heat"},
		{"Seven (a.k.a. Se7en) (1995)", "Seven"},
		{"Usual Suspects, The (1995)", "Usual Suspects, The"},
		{"  Cosmos  ", "Cosmos"},
		{"(500) Days of Summer (2009)", "(500) Days of Summer"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := NormalizeTitle(tt.title); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestStaticFetcher(t *testing.T) {
	f := NewStaticFetcher(map[string]Metadata{
		"Heat (1995)": {Overview: "A group of professional bank robbers"},
	})

	md, err := f.Fetch(context.Background(), "Heat")
	if err != nil {
		t.Fatalf("Fetch(Heat) error = %v", err)
	}
	if md.Overview == "" {
		t.Error("Fetch(Heat) returned empty overview")
	}

	if _, err := f.Fetch(context.Background(), "Casino (1995)"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch(Casino) error = %v, want ErrNotFound", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, "Heat (1995)"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() on cancelled ctx error = %v, want context.Canceled", err)
	}

	if f.Calls() != 3 {
		t.Errorf("Calls() = %d, want 3", f.Calls())
	}
}
