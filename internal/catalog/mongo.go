// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Mongo collection names.
const (
	MoviesCollection  = "movies"
	RatingsCollection = "ratings"
)

// MongoStore reads the catalog from the movies and ratings collections.
//
// Movie documents: {movieId, title, genres, year?}. genres may be an array
// or a pipe-delimited string; a missing year is parsed from the title.
// Rating documents: {userId, movieId, rating}.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		client.Disconnect(context.Background()) //nolint:errcheck // best-effort cleanup on error path
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(database)}, nil
}

// LoadItems implements Store. Documents are read in _id order so that the
// first of two duplicates is stable across loads.
func (s *MongoStore) LoadItems(ctx context.Context) ([]recommend.Item, error) {
	cur, err := s.db.Collection(MoviesCollection).Find(ctx, bson.M{},
		options.Find().
			SetProjection(bson.M{"movieId": 1, "title": 1, "genres": 1, "year": 1}).
			SetSort(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer cur.Close(ctx)

	var items []recommend.Item
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode movie: %w", err)
		}

		title, _ := raw["title"].(string)
		title = strings.TrimSpace(title)
		year, ok := asInt(raw["year"])
		if !ok {
			year = ParseYear(title)
		}
		id, _ := asInt(raw["movieId"])

		items = append(items, recommend.Item{
			ID:    id,
			Title: title,
			Tags:  asTags(raw["genres"]),
			Year:  year,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return items, nil
}

// LoadRatings implements Store.
func (s *MongoStore) LoadRatings(ctx context.Context) ([]recommend.Rating, error) {
	cur, err := s.db.Collection(RatingsCollection).Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"userId": 1, "movieId": 1, "rating": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("find ratings: %w", err)
	}
	defer cur.Close(ctx)

	var ratings []recommend.Rating
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode rating: %w", err)
		}
		userID, _ := asInt(raw["userId"])
		itemID, _ := asInt(raw["movieId"])
		value, ok := asFloat64(raw["rating"])
		if !ok {
			value = -1 // rejected by Load
		}
		ratings = append(ratings, recommend.Rating{UserID: userID, ItemID: itemID, Value: value})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

// Close implements Store.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// BSON numbers arrive as int32, int64 or double depending on the writer.
func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

func asTags(v any) []string {
	switch x := v.(type) {
	case string:
		return SplitTags(x)
	case primitive.A:
		tags := make([]string, 0, len(x))
		for _, t := range x {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
		return cleanTags(tags)
	default:
		return nil
	}
}
