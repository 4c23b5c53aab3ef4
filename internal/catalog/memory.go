// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"context"
	"slices"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// MemoryStore serves fixed slices. Useful for tests and embedding.
type MemoryStore struct {
	items   []recommend.Item
	ratings []recommend.Rating
}

// NewMemoryStore creates a store over copies of items and ratings.
func NewMemoryStore(items []recommend.Item, ratings []recommend.Rating) *MemoryStore {
	return &MemoryStore{
		items:   slices.Clone(items),
		ratings: slices.Clone(ratings),
	}
}

// LoadItems implements Store.
func (s *MemoryStore) LoadItems(ctx context.Context) ([]recommend.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]recommend.Item, len(s.items))
	for i, it := range s.items {
		it.Tags = slices.Clone(it.Tags)
		out[i] = it
	}
	return out, nil
}

// LoadRatings implements Store.
func (s *MemoryStore) LoadRatings(ctx context.Context) ([]recommend.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.ratings), nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

// NewDemoStore returns a small built-in catalog for the memory source.
func NewDemoStore() *MemoryStore {
	items := []recommend.Item{
		{ID: 1, Title: "Toy Story (1995)", Tags: []string{"Adventure", "Animation", "Children", "Comedy", "Fantasy"}, Year: 1995},
		{ID: 2, Title: "Jumanji (1995)", Tags: []string{"Adventure", "Children", "Fantasy"}, Year: 1995},
		{ID: 3, Title: "Grumpier Old Men (1995)", Tags: []string{"Comedy", "Romance"}, Year: 1995},
		{ID: 6, Title: "Heat (1995)", Tags: []string{"Action", "Crime", "Thriller"}, Year: 1995},
		{ID: 32, Title: "Twelve Monkeys (a.k.a. 12 Monkeys) (1995)", Tags: []string{"Mystery", "Sci-Fi", "Thriller"}, Year: 1995},
		{ID: 47, Title: "Seven (a.k.a. Se7en) (1995)", Tags: []string{"Mystery", "Thriller"}, Year: 1995},
		{ID: 50, Title: "Usual Suspects, The (1995)", Tags: []string{"Crime", "Mystery", "Thriller"}, Year: 1995},
		{ID: 110, Title: "Braveheart (1995)", Tags: []string{"Action", "Drama", "War"}, Year: 1995},
		{ID: 260, Title: "Star Wars: Episode IV - A New Hope (1977)", Tags: []string{"Action", "Adventure", "Sci-Fi"}, Year: 1977},
		{ID: 296, Title: "Pulp Fiction (1994)", Tags: []string{"Comedy", "Crime", "Drama", "Thriller"}, Year: 1994},
		{ID: 318, Title: "Shawshank Redemption, The (1994)", Tags: []string{"Crime", "Drama"}, Year: 1994},
		{ID: 356, Title: "Forrest Gump (1994)", Tags: []string{"Comedy", "Drama", "Romance", "War"}, Year: 1994},
		{ID: 480, Title: "Jurassic Park (1993)", Tags: []string{"Action", "Adventure", "Sci-Fi", "Thriller"}, Year: 1993},
		{ID: 527, Title: "Schindler's List (1993)", Tags: []string{"Drama", "War"}, Year: 1993},
		{ID: 589, Title: "Terminator 2: Judgment Day (1991)", Tags: []string{"Action", "Sci-Fi"}, Year: 1991},
		{ID: 593, Title: "Silence of the Lambs, The (1991)", Tags: []string{"Crime", "Horror", "Thriller"}, Year: 1991},
		{ID: 1196, Title: "Star Wars: Episode V - The Empire Strikes Back (1980)", Tags: []string{"Action", "Adventure", "Sci-Fi"}, Year: 1980},
		{ID: 2571, Title: "Matrix, The (1999)", Tags: []string{"Action", "Sci-Fi", "Thriller"}, Year: 1999},
		{ID: 2959, Title: "Fight Club (1999)", Tags: []string{"Action", "Crime", "Drama", "Thriller"}, Year: 1999},
		{ID: 4993, Title: "Lord of the Rings: The Fellowship of the Ring, The (2001)", Tags: []string{"Adventure", "Fantasy"}, Year: 2001},
	}

	ratings := []recommend.Rating{
		{UserID: 1, ItemID: 1, Value: 4}, {UserID: 1, ItemID: 3, Value: 4}, {UserID: 1, ItemID: 6, Value: 4},
		{UserID: 1, ItemID: 47, Value: 5}, {UserID: 1, ItemID: 50, Value: 5}, {UserID: 1, ItemID: 110, Value: 4},
		{UserID: 1, ItemID: 260, Value: 5}, {UserID: 1, ItemID: 296, Value: 3}, {UserID: 1, ItemID: 2571, Value: 5},
		{UserID: 2, ItemID: 318, Value: 3}, {UserID: 2, ItemID: 356, Value: 3}, {UserID: 2, ItemID: 527, Value: 4.5},
		{UserID: 2, ItemID: 2959, Value: 4}, {UserID: 2, ItemID: 4993, Value: 4},
		{UserID: 3, ItemID: 1, Value: 3.5}, {UserID: 3, ItemID: 2, Value: 3}, {UserID: 3, ItemID: 480, Value: 4},
		{UserID: 3, ItemID: 589, Value: 4}, {UserID: 3, ItemID: 1196, Value: 4.5}, {UserID: 3, ItemID: 260, Value: 4.5},
		{UserID: 4, ItemID: 32, Value: 4}, {UserID: 4, ItemID: 47, Value: 4.5}, {UserID: 4, ItemID: 50, Value: 4},
		{UserID: 4, ItemID: 593, Value: 5}, {UserID: 4, ItemID: 296, Value: 5}, {UserID: 4, ItemID: 2959, Value: 4.5},
		{UserID: 5, ItemID: 1, Value: 5}, {UserID: 5, ItemID: 2, Value: 4}, {UserID: 5, ItemID: 3, Value: 3},
		{UserID: 5, ItemID: 356, Value: 4.5}, {UserID: 5, ItemID: 4993, Value: 3.5}, {UserID: 5, ItemID: 318, Value: 5},
		{UserID: 6, ItemID: 260, Value: 5}, {UserID: 6, ItemID: 1196, Value: 5}, {UserID: 6, ItemID: 2571, Value: 4.5},
		{UserID: 6, ItemID: 589, Value: 4}, {UserID: 6, ItemID: 480, Value: 3.5}, {UserID: 6, ItemID: 110, Value: 3},
	}

	return NewMemoryStore(items, ratings)
}
