// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	// DuckDB driver - reads the CSV files through read_csv_auto
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// DuckDBConfig configures a DuckDBStore.
type DuckDBConfig struct {
	// MoviesPath is a CSV with columns MovieID, Title, Genres and optionally Year.
	MoviesPath string

	// RatingsPath is a CSV with columns UserID, MovieID, Rating.
	RatingsPath string

	MaxMemory string // e.g. "1GB"; empty uses the DuckDB default
	Threads   int    // 0 = runtime.NumCPU()
}

// DuckDBStore reads MovieLens-style CSV files with an in-memory DuckDB
// connection. Column names are matched case-insensitively.
type DuckDBStore struct {
	db  *sql.DB
	cfg DuckDBConfig
}

// NewDuckDBStore opens an in-memory DuckDB connection and checks that both
// files exist.
func NewDuckDBStore(cfg DuckDBConfig) (*DuckDBStore, error) {
	for _, p := range []string{cfg.MoviesPath, cfg.RatingsPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("catalog file: %w", err)
		}
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	dsn := fmt.Sprintf("?threads=%d", threads)
	if cfg.MaxMemory != "" {
		dsn += "&max_memory=" + cfg.MaxMemory
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck // best-effort cleanup on error path
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	return &DuckDBStore{db: db, cfg: cfg}, nil
}

// LoadItems implements Store. When the file has no Year column the year is
// parsed from the title.
func (s *DuckDBStore) LoadItems(ctx context.Context) ([]recommend.Item, error) {
	source := csvSource(s.cfg.MoviesPath)

	columns, err := s.columns(ctx, source)
	if err != nil {
		return nil, err
	}
	for _, required := range []string{"movieid", "title", "genres"} {
		if !columns[required] {
			return nil, fmt.Errorf("%s: missing column %s", s.cfg.MoviesPath, required)
		}
	}
	hasYear := columns["year"]

	yearExpr := "0"
	if hasYear {
		yearExpr = "COALESCE(TRY_CAST(Year AS INTEGER), 0)"
	}
	query := fmt.Sprintf(`
		SELECT
			COALESCE(TRY_CAST(MovieID AS BIGINT), 0),
			COALESCE(CAST(Title AS VARCHAR), ''),
			COALESCE(CAST(Genres AS VARCHAR), ''),
			%s
		FROM %s`, yearExpr, source)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []recommend.Item
	for rows.Next() {
		var (
			id     int64
			title  string
			genres string
			year   int
		)
		if err := rows.Scan(&id, &title, &genres, &year); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		title = strings.TrimSpace(title)
		if !hasYear {
			year = ParseYear(title)
		}
		items = append(items, recommend.Item{
			ID:    int(id),
			Title: title,
			Tags:  SplitTags(genres),
			Year:  year,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// LoadRatings implements Store. Unparseable cells become out-of-range
// values so that Load rejects the row instead of failing the scan.
func (s *DuckDBStore) LoadRatings(ctx context.Context) ([]recommend.Rating, error) {
	source := csvSource(s.cfg.RatingsPath)

	columns, err := s.columns(ctx, source)
	if err != nil {
		return nil, err
	}
	for _, required := range []string{"userid", "movieid", "rating"} {
		if !columns[required] {
			return nil, fmt.Errorf("%s: missing column %s", s.cfg.RatingsPath, required)
		}
	}

	query := fmt.Sprintf(`
		SELECT
			COALESCE(TRY_CAST(UserID AS BIGINT), 0),
			COALESCE(TRY_CAST(MovieID AS BIGINT), 0),
			COALESCE(TRY_CAST(Rating AS DOUBLE), -1)
		FROM %s`, source)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []recommend.Rating
	for rows.Next() {
		var userID, itemID int64
		var value float64
		if err := rows.Scan(&userID, &itemID, &value); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, recommend.Rating{UserID: int(userID), ItemID: int(itemID), Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

// columns returns the lower-cased column names of a CSV source.
func (s *DuckDBStore) columns(ctx context.Context, source string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+source+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", source, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	cols := make(map[string]bool, len(names))
	for _, name := range names {
		cols[strings.ToLower(strings.TrimSpace(name))] = true
	}
	return cols, nil
}

// Close implements Store.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}

// csvSource builds a read_csv_auto call over a quoted path literal.
func csvSource(path string) string {
	return "read_csv_auto('" + strings.ReplaceAll(path, "'", "''") + "', header = true)"
}
