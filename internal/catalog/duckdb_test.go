// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestDuckDBStore(t *testing.T, movies, ratings string) *DuckDBStore {
	t.Helper()
	dir := t.TempDir()
	store, err := NewDuckDBStore(DuckDBConfig{
		MoviesPath:  writeFile(t, dir, "movies.csv", movies),
		RatingsPath: writeFile(t, dir, "ratings.csv", ratings),
		Threads:     1,
	})
	if err != nil {
		t.Fatalf("NewDuckDBStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

const movieLensMovies = `movieId,title,genres
1,Toy Story (1995),Adventure|Animation|Children|Comedy|Fantasy
2,Jumanji (1995),Adventure|Children|Fantasy
11,"American President, The (1995)",Comedy|Drama|Romance
99,Untitled,(no genres listed)
`

const movieLensRatings = `userId,movieId,rating,timestamp
1,1,4.0,964982703
1,2,3.5,964981247
2,11,5.0,964982224
2,1,oops,964982224
`

func TestDuckDBStore_LoadItems(t *testing.T) {
	store := newTestDuckDBStore(t, movieLensMovies, movieLensRatings)

	items, err := store.LoadItems(context.Background())
	if err != nil {
		t.Fatalf("LoadItems() error = %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("items = %d, want 4", len(items))
	}

	tests := []struct {
		idx   int
		id    int
		title string
		year  int
		tags  []string
	}{
		{0, 1, "Toy Story (1995)", 1995, []string{"Adventure", "Animation", "Children", "Comedy", "Fantasy"}},
		{2, 11, "American President, The (1995)", 1995, []string{"Comedy", "Drama", "Romance"}},
		{3, 99, "Untitled", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := items[tt.idx]
			if got.ID != tt.id || got.Title != tt.title || got.Year != tt.year {
				t.Errorf("item = {%d %q %d}, want {%d %q %d}", got.ID, got.Title, got.Year, tt.id, tt.title, tt.year)
			}
			if !slices.Equal(got.Tags, tt.tags) {
				t.Errorf("tags = %q, want %q", got.Tags, tt.tags)
			}
		})
	}
}

func TestDuckDBStore_YearColumn(t *testing.T) {
	movies := "MovieID,Title,Genres,Year\n1,Heat,Action|Crime,1995\n2,Casino (1995),Crime,\n"
	store := newTestDuckDBStore(t, movies, movieLensRatings)

	items, err := store.LoadItems(context.Background())
	if err != nil {
		t.Fatalf("LoadItems() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Year != 1995 {
		t.Errorf("Heat year = %d, want 1995 from the Year column", items[0].Year)
	}
	if items[1].Year != 0 {
		t.Errorf("Casino year = %d, want 0 when the Year cell is empty", items[1].Year)
	}
}

func TestDuckDBStore_LoadRatings(t *testing.T) {
	store := newTestDuckDBStore(t, movieLensMovies, movieLensRatings)

	ratings, err := store.LoadRatings(context.Background())
	if err != nil {
		t.Fatalf("LoadRatings() error = %v", err)
	}
	if len(ratings) != 4 {
		t.Fatalf("ratings = %d, want 4", len(ratings))
	}
	if r := ratings[1]; r.UserID != 1 || r.ItemID != 2 || r.Value != 3.5 {
		t.Errorf("ratings[1] = %+v, want {1 2 3.5}", r)
	}
	if r := ratings[3]; r.Value != -1 {
		t.Errorf("unparseable rating = %v, want -1", r.Value)
	}
}

func TestDuckDBStore_ThroughLoad(t *testing.T) {
	store := newTestDuckDBStore(t, movieLensMovies, movieLensRatings)

	snap, report, err := Load(context.Background(), store, DefaultOptions())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.Items) != 4 || len(snap.Ratings) != 3 {
		t.Errorf("snapshot = %d items %d ratings, want 4 and 3", len(snap.Items), len(snap.Ratings))
	}
	if report.InvalidRatings != 1 {
		t.Errorf("InvalidRatings = %d, want 1", report.InvalidRatings)
	}
}

func TestDuckDBStore_MissingColumn(t *testing.T) {
	store := newTestDuckDBStore(t, "movieId,title\n1,Heat (1995)\n", "userId,movieId\n1,1\n")

	_, err := store.LoadItems(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing column genres") {
		t.Errorf("LoadItems() error = %v, want missing column genres", err)
	}
	_, err = store.LoadRatings(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing column rating") {
		t.Errorf("LoadRatings() error = %v, want missing column rating", err)
	}
}

func TestNewDuckDBStore_MissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewDuckDBStore(DuckDBConfig{
		MoviesPath:  filepath.Join(dir, "movies.csv"),
		RatingsPath: writeFile(t, dir, "ratings.csv", movieLensRatings),
	})
	if err == nil {
		t.Error("NewDuckDBStore() should fail when movies.csv is missing")
	}
}

func TestCSVSource_QuotesPath(t *testing.T) {
	got := csvSource("/data/it's.csv")
	want := "read_csv_auto('/data/it''s.csv', header = true)"
	if got != want {
		t.Errorf("csvSource() = %q, want %q", got, want)
	}
}
