// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package algorithms implements the similarity indices behind the
// recommendation engine.
//
// # Indices
//
//   - TFIDF: content index. Sparse TF-IDF vectors over item tags, L2
//     normalized, cosine nearest neighbors.
//   - UserKNN: collaborative index. Dense user-item rating matrix, cosine
//     nearest users, mean neighbor rating per item.
//
// # Ordering Contract
//
// Every nearest-neighbor query excludes the query vector itself and orders
// hits by ascending cosine distance, breaking ties by ascending id. A zero
// vector is at distance 1 from everything, including another zero vector.
// Distances are computed so that Distance(a, b) == Distance(b, a) exactly.
//
// # Usage
//
//	content := algorithms.NewTFIDF()
//	if err := content.Build(ctx, items); err != nil {
//	    return err
//	}
//	neighbors := content.Nearest(itemID, 10)
//
//	users := algorithms.NewUserKNN(algorithms.DefaultUserKNNConfig())
//	if err := users.Build(ctx, ratings); err != nil {
//	    return err
//	}
//	scores := users.Scores(userID, 10, 10)
//
// # Thread Safety
//
// Indices are built once and then only read. Queries may run concurrently
// after Build returns; Build must not run concurrently with queries.
package algorithms
