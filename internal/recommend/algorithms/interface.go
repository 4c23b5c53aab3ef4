// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"container/heap"
	"context"
	"math"
	"sort"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// maxDistance is the cosine distance assigned whenever either vector is zero.
// All vectors here are non-negative, so real distances never exceed it.
const maxDistance = 1.0

// distanceEpsilon is the tolerance under which two distances are equal.
// Parallel vectors with different magnitudes land within a few ulps of each
// other, and those must tie so that the id order decides.
const distanceEpsilon = 1e-12

// BaseIndex provides the name and build bookkeeping shared by all indices.
//
// Indices are built once and then only read. Build must return before any
// query is issued; the engine guarantees this by waiting on the build
// before publishing itself.
type BaseIndex struct {
	name    string
	built   bool
	builtAt time.Time
}

// NewBaseIndex creates a new base index with the given name.
func NewBaseIndex(name string) BaseIndex {
	return BaseIndex{name: name}
}

// Name returns the index identifier.
func (b *BaseIndex) Name() string {
	return b.name
}

// IsBuilt reports whether Build completed successfully.
func (b *BaseIndex) IsBuilt() bool {
	return b.built
}

// BuiltAt returns when the index was last built.
func (b *BaseIndex) BuiltAt() time.Time {
	return b.builtAt
}

func (b *BaseIndex) markBuilt() {
	b.built = true
	b.builtAt = time.Now()
}

// cosineDistance converts a dot product and two norms into 1 - cos(theta),
// clamped to [0, maxDistance]. A zero norm yields maxDistance.
func cosineDistance(dot, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return maxDistance
	}
	d := 1 - dot/(normA*normB)
	if d < distanceEpsilon {
		return 0
	}
	if d > maxDistance {
		return maxDistance
	}
	return d
}

// closer orders neighbors by ascending distance, then ascending id.
// Distances within distanceEpsilon count as equal.
func closer(a, b recommend.Neighbor) bool {
	if math.Abs(a.Distance-b.Distance) > distanceEpsilon {
		return a.Distance < b.Distance
	}
	return a.ID < b.ID
}

// neighborHeap is a max-heap on (distance, id): the root is the worst of
// the current best k.
type neighborHeap []recommend.Neighbor

func (h neighborHeap) Len() int            { return len(h) }
func (h neighborHeap) Less(i, j int) bool  { return closer(h[j], h[i]) }
func (h neighborHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *neighborHeap) Push(x interface{}) { *h = append(*h, x.(recommend.Neighbor)) }
func (h *neighborHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topK keeps the k closest neighbors offered to it.
type topK struct {
	k int
	h neighborHeap
}

func newTopK(k int) *topK {
	return &topK{k: k, h: make(neighborHeap, 0, k)}
}

func (t *topK) offer(n recommend.Neighbor) {
	if len(t.h) < t.k {
		heap.Push(&t.h, n)
		return
	}
	if closer(n, t.h[0]) {
		t.h[0] = n
		heap.Fix(&t.h, 0)
	}
}

// sorted returns the kept neighbors closest first.
func (t *topK) sorted() []recommend.Neighbor {
	out := make([]recommend.Neighbor, len(t.h))
	copy(out, t.h)
	sort.Slice(out, func(i, j int) bool { return closer(out[i], out[j]) })
	return out
}

// ContextCancelled checks if the context has been cancelled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Ensure all indices implement the interfaces.
var (
	_ recommend.ContentIndex       = (*TFIDF)(nil)
	_ recommend.CollaborativeIndex = (*UserKNN)(nil)
)
