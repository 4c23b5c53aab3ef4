// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// UserKNNConfig contains configuration for the user-user index.
type UserKNNConfig struct {
	// NumWorkers is the number of goroutines scanning the matrix per query.
	NumWorkers int

	// ParallelThreshold is the minimum number of users before a query scan
	// is split across workers.
	ParallelThreshold int
}

// DefaultUserKNNConfig returns default configuration.
func DefaultUserKNNConfig() UserKNNConfig {
	return UserKNNConfig{
		NumWorkers:        runtime.NumCPU(),
		ParallelThreshold: 2048,
	}
}

// UserKNN is a collaborative index over a dense user-item rating matrix.
//
// Rows are users and columns are items, both in ascending id order. A cell
// holds the mean of the user's observations of that item, or 0 when the
// item is unrated. Users are compared by cosine distance over whole rows.
//
// Aggregation works on the raw observations rather than the matrix: every
// observation made by a neighbor counts, duplicates included.
type UserKNN struct {
	BaseIndex
	config UserKNNConfig

	users   []int
	userPos map[int]int
	items   []int

	matrix [][]float64
	unit   [][]float64 // L2-normalized rows, nil for a zero row
	norms  []float64

	observations [][]observation // per user, in input order
}

type observation struct {
	itemID int
	value  float64
}

// NewUserKNN creates a new user-user index.
func NewUserKNN(cfg UserKNNConfig) *UserKNN {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 1
	}
	if cfg.ParallelThreshold < 0 {
		cfg.ParallelThreshold = 0
	}
	return &UserKNN{
		BaseIndex: NewBaseIndex("user_knn"),
		config:    cfg,
	}
}

// Build constructs the rating matrix from scratch.
//
//nolint:gocritic // rangeValCopy: Rating passed by value in range, acceptable for clarity
func (u *UserKNN) Build(ctx context.Context, ratings []recommend.Rating) error {
	if len(ratings) == 0 {
		return recommend.ErrNoUsers
	}

	userSet := make(map[int]struct{})
	itemSet := make(map[int]struct{})
	for _, r := range ratings {
		userSet[r.UserID] = struct{}{}
		itemSet[r.ItemID] = struct{}{}
	}
	users := sortedKeys(userSet)
	items := sortedKeys(itemSet)

	userPos := make(map[int]int, len(users))
	for i, id := range users {
		userPos[id] = i
	}
	itemPos := make(map[int]int, len(items))
	for i, id := range items {
		itemPos[id] = i
	}

	observations := make([][]observation, len(users))
	for _, r := range ratings {
		row := userPos[r.UserID]
		observations[row] = append(observations[row], observation{itemID: r.ItemID, value: r.Value})
	}

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	matrix := make([][]float64, len(users))
	unit := make([][]float64, len(users))
	norms := make([]float64, len(users))
	counts := make([]int, len(items))
	for row, obs := range observations {
		cells := make([]float64, len(items))
		touched := make([]int, 0, len(obs))
		for _, o := range obs {
			col := itemPos[o.itemID]
			if counts[col] == 0 {
				touched = append(touched, col)
			}
			cells[col] += o.value
			counts[col]++
		}

		var sq float64
		for _, col := range touched {
			cells[col] /= float64(counts[col])
			sq += cells[col] * cells[col]
			counts[col] = 0
		}
		matrix[row] = cells
		norms[row] = math.Sqrt(sq)
		if norms[row] > 0 {
			unit[row] = make([]float64, len(items))
			for _, col := range touched {
				unit[row][col] = cells[col] / norms[row]
			}
		}

		if row%1024 == 0 && ContextCancelled(ctx) {
			return ctx.Err()
		}
	}

	u.users = users
	u.userPos = userPos
	u.items = items
	u.matrix = matrix
	u.unit = unit
	u.norms = norms
	u.observations = observations
	u.markBuilt()
	return nil
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// rowDistance returns the cosine distance between two matrix rows using
// the normalized rows. Columns are visited in ascending order for both
// argument orders.
func (u *UserKNN) rowDistance(a, b int) float64 {
	ra, rb := u.unit[a], u.unit[b]
	if ra == nil || rb == nil {
		return maxDistance
	}
	var dot float64
	for j := range ra {
		dot += ra[j] * rb[j]
	}
	return cosineDistance(dot, 1, 1)
}

// distancesFrom computes the distance from row q to every row. Large
// matrices are split into contiguous chunks scanned by a worker pool; each
// worker writes only its own slice range, so the result matches a
// sequential scan.
func (u *UserKNN) distancesFrom(q int) []float64 {
	n := len(u.users)
	dist := make([]float64, n)

	workers := u.config.NumWorkers
	if n < u.config.ParallelThreshold || workers <= 1 {
		for i := 0; i < n; i++ {
			dist[i] = u.rowDistance(q, i)
		}
		return dist
	}

	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				dist[i] = u.rowDistance(q, i)
			}
		}(start, end)
	}

	wg.Wait()
	return dist
}

// NearestUsers returns up to k users closest to userID, excluding userID
// itself, ordered by ascending distance and then ascending id.
func (u *UserKNN) NearestUsers(userID, k int) []recommend.Neighbor {
	q, ok := u.userPos[userID]
	if !ok || k <= 0 {
		return nil
	}

	dist := u.distancesFrom(q)
	top := newTopK(k)
	for i, id := range u.users {
		if i == q {
			continue
		}
		top.offer(recommend.Neighbor{ID: id, Distance: dist[i]})
	}
	return top.sorted()
}

// Scores aggregates the observations of the k nearest users into a mean
// rating per item and returns the topN items by descending mean, ties
// broken by ascending item id. Items no neighbor rated are absent.
func (u *UserKNN) Scores(userID, k, topN int) []recommend.ItemScore {
	if topN <= 0 {
		return nil
	}
	neighbors := u.NearestUsers(userID, k)
	if len(neighbors) == 0 {
		return nil
	}

	agg := make(map[int]*recommend.RatingStats)
	for _, n := range neighbors {
		for _, o := range u.observations[u.userPos[n.ID]] {
			s, ok := agg[o.itemID]
			if !ok {
				s = &recommend.RatingStats{}
				agg[o.itemID] = s
			}
			s.Sum += o.value
			s.Count++
		}
	}

	scores := make([]recommend.ItemScore, 0, len(agg))
	for itemID, s := range agg {
		mean, _ := s.Mean()
		scores = append(scores, recommend.ItemScore{ItemID: itemID, Score: mean, Count: s.Count})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].ItemID < scores[j].ItemID
	})

	if len(scores) > topN {
		scores = scores[:topN]
	}
	return scores
}

// Distance returns the cosine distance between two users.
func (u *UserKNN) Distance(a, b int) (float64, bool) {
	i, okA := u.userPos[a]
	j, okB := u.userPos[b]
	if !okA || !okB {
		return 0, false
	}
	return u.rowDistance(i, j), true
}

// Cell returns the matrix value for a user and item, 0 when unrated.
func (u *UserKNN) Cell(userID, itemID int) float64 {
	row, ok := u.userPos[userID]
	if !ok {
		return 0
	}
	col := sort.SearchInts(u.items, itemID)
	if col == len(u.items) || u.items[col] != itemID {
		return 0
	}
	return u.matrix[row][col]
}

// UserIDs returns the sorted distinct user ids.
func (u *UserKNN) UserIDs() []int {
	out := make([]int, len(u.users))
	copy(out, u.users)
	return out
}

// Users returns the number of matrix rows.
func (u *UserKNN) Users() int {
	return len(u.users)
}

// Items returns the number of matrix columns.
func (u *UserKNN) Items() int {
	return len(u.items)
}
