// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

//go:build integration

package catalog

import (
	"context"
	"slices"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/reelmatch/internal/testinfra"
)

func seedMongo(t *testing.T, ctx context.Context, uri, database string) {
	t.Helper()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	db := client.Database(database)
	movies := []any{
		bson.M{"_id": 1, "movieId": int32(1), "title": "Toy Story (1995)", "genres": bson.A{"Adventure", "Animation"}},
		bson.M{"_id": 2, "movieId": int64(6), "title": "Heat", "genres": "Action|Crime", "year": 1995.0},
		bson.M{"_id": 3, "movieId": 1, "title": "Toy Story copy", "genres": "Comedy"},
	}
	if _, err := db.Collection(MoviesCollection).InsertMany(ctx, movies); err != nil {
		t.Fatalf("insert movies: %v", err)
	}

	ratings := []any{
		bson.M{"userId": 1, "movieId": 1, "rating": 4.5},
		bson.M{"userId": 1, "movieId": 6, "rating": int32(3)},
		bson.M{"userId": 2, "movieId": 6, "rating": "five"},
	}
	if _, err := db.Collection(RatingsCollection).InsertMany(ctx, ratings); err != nil {
		t.Fatalf("insert ratings: %v", err)
	}
}

func TestMongoStore_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testinfra.NewMongoContainer(ctx)
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	testinfra.CleanupContainer(t, container)

	const database = "reelmatch_test"
	seedMongo(t, ctx, container.URI, database)

	store, err := NewMongoStore(ctx, container.URI, database)
	if err != nil {
		t.Fatalf("NewMongoStore() error = %v", err)
	}
	defer store.Close()

	items, err := store.LoadItems(ctx)
	if err != nil {
		t.Fatalf("LoadItems() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].ID != 1 || items[0].Year != 1995 || !slices.Equal(items[0].Tags, []string{"Adventure", "Animation"}) {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].ID != 6 || items[1].Year != 1995 || !slices.Equal(items[1].Tags, []string{"Action", "Crime"}) {
		t.Errorf("items[1] = %+v", items[1])
	}

	snap, report, err := Load(ctx, store, DefaultOptions())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.Items) != 2 || report.DuplicateItems != 1 {
		t.Errorf("items = %d duplicates = %d, want 2 and 1", len(snap.Items), report.DuplicateItems)
	}
	if len(snap.Ratings) != 2 || report.InvalidRatings != 1 {
		t.Errorf("ratings = %d invalid = %d, want 2 and 1", len(snap.Ratings), report.InvalidRatings)
	}
}

func TestNewMongoStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := NewMongoStore(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=500", "x")
	if err == nil {
		t.Error("NewMongoStore() should fail for an unreachable server")
	}
}
