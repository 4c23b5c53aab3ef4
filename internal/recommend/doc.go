// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements the dual movie recommendation engine.
//
// # Architecture
//
// Two independent retrieval strategies share one catalog snapshot:
//
//   - Content similarity: TF-IDF vectors over item tags, cosine nearest
//     neighbors to a chosen item.
//   - Collaborative similarity: a dense user-item rating matrix, cosine
//     nearest neighbors to a user, and the mean rating of every neighbor
//     observation per item.
//
// Both strategies feed the same post-filter pipeline (genre, release year,
// mean rating range, optional extra predicates). The modes are never
// combined.
//
// # Lifecycle
//
// NewEngine builds both indices once from a Snapshot. The resulting Engine
// is immutable and safe for concurrent queries without locks. A catalog
// reload builds a new Engine and publishes it through a Holder.
//
// # Usage
//
//	engine, err := recommend.NewEngine(ctx, recommend.DefaultConfig(), snap,
//	    recommend.Indices{
//	        Content:       algorithms.NewTFIDF(),
//	        Collaborative: algorithms.NewUserKNN(algorithms.DefaultUserKNNConfig()),
//	    }, logger)
//
//	res, err := engine.RecommendByContent(ctx, recommend.ContentQuery{
//	    Title: "Heat (1995)",
//	    Num:   10,
//	})
//
// # Outcomes
//
// "No recommendation" is a business outcome, not an error. Unknown items,
// unknown users and over-filtered results come back as a Result with an
// empty item list and a distinct Outcome.
package recommend
