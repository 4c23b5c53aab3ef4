// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// TFIDF is a content index over item tags.
//
// Each distinct tag is a term. Every item has term frequency 1 for each of
// its tags, weighted by the smoothed inverse document frequency
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
//
// where n is the number of items and df(t) the number of items carrying t.
// Vectors are L2-normalized, so cosine similarity reduces to a dot product.
// Items without tags get the zero vector, which is at maximal distance from
// everything.
//
// Nearest is a brute-force scan, adequate for catalogs in the tens of
// thousands of items.
type TFIDF struct {
	BaseIndex

	ids     []int // sorted item ids
	pos     map[int]int
	vectors []sparseVector
	vocab   map[string]int // term -> dimension
	idf     []float64
}

// sparseVector holds non-zero weights in ascending dimension order.
type sparseVector struct {
	dims    []int
	weights []float64
}

// dot multiplies two sparse vectors. Products are summed in ascending
// dimension order regardless of argument order, so dot(a, b) == dot(b, a)
// exactly.
func (v sparseVector) dot(o sparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.dims) && j < len(o.dims) {
		switch {
		case v.dims[i] == o.dims[j]:
			sum += v.weights[i] * o.weights[j]
			i++
			j++
		case v.dims[i] < o.dims[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

func (v sparseVector) norm() float64 {
	var sum float64
	for _, w := range v.weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// NewTFIDF creates an empty content index.
func NewTFIDF() *TFIDF {
	return &TFIDF{BaseIndex: NewBaseIndex("tfidf")}
}

// normalizeTerms lower-cases and trims tags and drops empties and duplicates.
func normalizeTerms(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	terms := make([]string, 0, len(tags))
	for _, tag := range tags {
		term := strings.ToLower(strings.TrimSpace(tag))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

// Build computes the vocabulary, the idf weights and one vector per item.
// Any previous state is discarded.
//
//nolint:gocritic // rangeValCopy: Item passed by value in range, acceptable for clarity
func (t *TFIDF) Build(ctx context.Context, items []recommend.Item) error {
	if len(items) == 0 {
		return recommend.ErrEmptyCatalog
	}

	sorted := make([]recommend.Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	ids := make([]int, len(sorted))
	pos := make(map[int]int, len(sorted))
	itemTerms := make([][]string, len(sorted))
	df := make(map[string]int)

	for i, item := range sorted {
		if _, dup := pos[item.ID]; dup {
			return fmt.Errorf("%w: id %d", recommend.ErrDuplicateItem, item.ID)
		}
		ids[i] = item.ID
		pos[item.ID] = i
		itemTerms[i] = normalizeTerms(item.Tags)
		for _, term := range itemTerms[i] {
			df[term]++
		}
	}

	if ContextCancelled(ctx) {
		return ctx.Err()
	}

	// Dimensions follow sorted term order so builds are reproducible.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(sorted))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for d, term := range terms {
		vocab[term] = d
		idf[d] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]sparseVector, len(sorted))
	for i, itemTermList := range itemTerms {
		v := sparseVector{
			dims:    make([]int, 0, len(itemTermList)),
			weights: make([]float64, 0, len(itemTermList)),
		}
		for _, term := range itemTermList {
			v.dims = append(v.dims, vocab[term])
		}
		sort.Ints(v.dims)
		for _, d := range v.dims {
			v.weights = append(v.weights, idf[d])
		}
		if norm := v.norm(); norm > 0 {
			for k := range v.weights {
				v.weights[k] /= norm
			}
		}
		vectors[i] = v
	}

	t.ids = ids
	t.pos = pos
	t.vectors = vectors
	t.vocab = vocab
	t.idf = idf
	t.markBuilt()
	return nil
}

// distanceAt returns the cosine distance between two vectors by position.
func (t *TFIDF) distanceAt(i, j int) float64 {
	a, b := t.vectors[i], t.vectors[j]
	if len(a.dims) == 0 || len(b.dims) == 0 {
		return maxDistance
	}
	return cosineDistance(a.dot(b), a.norm(), b.norm())
}

// Nearest returns up to k items closest to itemID, excluding itemID itself,
// ordered by ascending distance and then ascending id.
func (t *TFIDF) Nearest(itemID, k int) []recommend.Neighbor {
	q, ok := t.pos[itemID]
	if !ok || k <= 0 {
		return nil
	}

	top := newTopK(k)
	for i, id := range t.ids {
		if i == q {
			continue
		}
		top.offer(recommend.Neighbor{ID: id, Distance: t.distanceAt(q, i)})
	}
	return top.sorted()
}

// Distance returns the cosine distance between two items.
func (t *TFIDF) Distance(a, b int) (float64, bool) {
	i, okA := t.pos[a]
	j, okB := t.pos[b]
	if !okA || !okB {
		return 0, false
	}
	return t.distanceAt(i, j), true
}

// Weights returns the tag weights of an item's vector, keyed by normalized tag.
func (t *TFIDF) Weights(itemID int) map[string]float64 {
	i, ok := t.pos[itemID]
	if !ok {
		return nil
	}
	terms := make([]string, len(t.vocab))
	for term, d := range t.vocab {
		terms[d] = term
	}
	v := t.vectors[i]
	out := make(map[string]float64, len(v.dims))
	for k, d := range v.dims {
		out[terms[d]] = v.weights[k]
	}
	return out
}

// Len returns the number of indexed items.
func (t *TFIDF) Len() int {
	return len(t.ids)
}

// Dimensions returns the number of distinct terms.
func (t *TFIDF) Dimensions() int {
	return len(t.idf)
}
