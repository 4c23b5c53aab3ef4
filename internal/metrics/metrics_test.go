// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount returns the sample count of one labelled histogram series.
func histogramCount(t *testing.T, vec *prometheus.HistogramVec, labels ...string) uint64 {
	t.Helper()
	obs, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues(%v): %v", labels, err)
	}
	var m io_prometheus_client.Metric
	if err := obs.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordCatalogLoad(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "csv", source: "csv"},
		{name: "duckdb", source: "duckdb"},
		{name: "mongo", source: "mongo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := histogramCount(t, CatalogLoadDuration, tt.source)
			RecordCatalogLoad(tt.source, 250*time.Millisecond)
			if got := histogramCount(t, CatalogLoadDuration, tt.source); got != before+1 {
				t.Errorf("sample count = %d, want %d", got, before+1)
			}
		})
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		outcome  string
		returned int
	}{
		{"content ok", "content", "ok", 10},
		{"content unknown item", "content", "unknown_item", 0},
		{"collaborative ok", "collaborative", "ok", 3},
		{"collaborative no match", "collaborative", "no_match", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := RecommendationsTotal.WithLabelValues(tt.mode, tt.outcome)
			before := testutil.ToFloat64(counter)

			RecordRecommendation(tt.mode, tt.outcome, tt.returned, 2*time.Millisecond)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("recommendations_total delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordEngineBuild(t *testing.T) {
	t.Run("success updates sizes", func(t *testing.T) {
		RecordEngineBuild(time.Second, 20, 6, 38, 17, nil)

		checks := map[string]float64{"items": 20, "users": 6, "ratings": 38, "tags": 17}
		for kind, want := range checks {
			if got := testutil.ToFloat64(CatalogSize.WithLabelValues(kind)); got != want {
				t.Errorf("catalog_size{kind=%q} = %v, want %v", kind, got, want)
			}
		}
		if testutil.ToFloat64(EngineLastBuild) == 0 {
			t.Error("engine_last_build_timestamp_seconds not set")
		}
	})

	t.Run("failure counts error and keeps sizes", func(t *testing.T) {
		before := testutil.ToFloat64(EngineBuildErrors)
		items := testutil.ToFloat64(CatalogSize.WithLabelValues("items"))

		RecordEngineBuild(time.Second, 1, 1, 1, 1, errors.New("no users"))

		if got := testutil.ToFloat64(EngineBuildErrors) - before; got != 1 {
			t.Errorf("engine_build_errors_total delta = %v, want 1", got)
		}
		if got := testutil.ToFloat64(CatalogSize.WithLabelValues("items")); got != items {
			t.Errorf("catalog_size{kind=items} = %v, want unchanged %v", got, items)
		}
	})
}

func TestCatalogRowsRejected(t *testing.T) {
	c := CatalogRowsRejected.WithLabelValues("rating", "orphaned")
	before := testutil.ToFloat64(c)
	c.Add(3)
	if got := testutil.ToFloat64(c) - before; got != 3 {
		t.Errorf("delta = %v, want 3", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := CacheHits.WithLabelValues("memory")
	misses := CacheMisses.WithLabelValues("memory")
	h0, m0 := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordCacheLookup("memory", true)
	RecordCacheLookup("memory", true)
	RecordCacheLookup("memory", false)

	if got := testutil.ToFloat64(hits) - h0; got != 2 {
		t.Errorf("hits delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(misses) - m0; got != 1 {
		t.Errorf("misses delta = %v, want 1", got)
	}
}

func TestRecordCacheError(t *testing.T) {
	c := CacheErrors.WithLabelValues("redis", "get")
	before := testutil.ToFloat64(c)
	RecordCacheError("redis", "get")
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestRecordEnrichmentRequest(t *testing.T) {
	for _, result := range []string{"found", "not_found", "error"} {
		c := EnrichmentRequests.WithLabelValues(result)
		before := testutil.ToFloat64(c)
		RecordEnrichmentRequest(result, 150*time.Millisecond)
		if got := testutil.ToFloat64(c) - before; got != 1 {
			t.Errorf("enrichment_requests_total{result=%q} delta = %v, want 1", result, got)
		}
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations/content", "200")
	before := testutil.ToFloat64(c)

	RecordAPIRequest("GET", "/api/v1/recommendations/content", "200", 5*time.Millisecond)

	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest_Concurrent(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("api_active_requests = %v, want %v", got, before)
	}
}
