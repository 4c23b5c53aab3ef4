// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Engine owns both similarity indices for one catalog snapshot and serves
// the two recommendation entry points. An Engine is immutable once
// NewEngine returns and is safe for concurrent use without locking.
// Reloading a catalog means building a new Engine (see Holder).
type Engine struct {
	config *Config
	logger zerolog.Logger

	content ContentIndex
	collab  CollaborativeIndex

	items   []Item         // sorted by id
	byID    map[int]int    // item id -> index in items
	byTitle map[string]int // title -> index in items
	stats   map[int]RatingStats

	genres  []string
	years   []int
	titles  []string
	users   []int
	ratings int

	builtAt       time.Time
	buildDuration time.Duration
}

// NewEngine validates the snapshot, builds both indices concurrently and
// precomputes the accessor sets. It fails fast with ErrEmptyCatalog or
// ErrNoUsers when either vector space would be empty.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(ctx context.Context, cfg *Config, snap Snapshot, idx Indices, logger zerolog.Logger) (*Engine, error) {
	start := time.Now()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if idx.Content == nil || idx.Collaborative == nil {
		return nil, errors.New("recommend: both content and collaborative indices are required")
	}
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(snap.Ratings) == 0 {
		return nil, ErrNoUsers
	}

	e := &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		content: idx.Content,
		collab:  idx.Collaborative,
	}

	if err := e.indexItems(snap.Items); err != nil {
		return nil, err
	}

	// Ratings for items outside the catalog could never be recommended, so
	// they must not take a slot in the collaborative ranking.
	ratings, orphans := e.catalogRatings(snap.Ratings)
	if orphans > 0 {
		e.logger.Warn().Int("orphan_ratings", orphans).Msg("ignoring ratings for items missing from the catalog")
	}
	if len(ratings) == 0 {
		return nil, ErrNoUsers
	}
	e.ratings = len(ratings)
	e.indexRatings(ratings)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.content.Build(gctx, e.items); err != nil {
			return fmt.Errorf("build %s index: %w", e.content.Name(), err)
		}
		return nil
	})
	g.Go(func() error {
		if err := e.collab.Build(gctx, ratings); err != nil {
			return fmt.Errorf("build %s index: %w", e.collab.Name(), err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.users = e.collab.UserIDs()
	if len(e.users) == 0 {
		return nil, ErrNoUsers
	}

	e.builtAt = time.Now()
	e.buildDuration = e.builtAt.Sub(start)
	metrics.RecordEngineBuild(e.buildDuration, len(e.items), len(e.users), e.ratings, len(e.genres), nil)

	ev := e.logger.Info()
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		ev = ev.Str("correlation_id", id)
	}
	ev.Int("items", len(e.items)).
		Int("users", len(e.users)).
		Int("ratings", e.ratings).
		Int("tags", len(e.genres)).
		Dur("duration", e.buildDuration).
		Msg("recommendation engine built")

	return e, nil
}

// indexItems copies the items sorted by id and derives the lookup maps and
// the genre, year and title sets.
func (e *Engine) indexItems(items []Item) error {
	e.items = make([]Item, len(items))
	copy(e.items, items)
	sort.Slice(e.items, func(i, j int) bool { return e.items[i].ID < e.items[j].ID })

	e.byID = make(map[int]int, len(e.items))
	e.byTitle = make(map[string]int, len(e.items))
	e.titles = make([]string, 0, len(e.items))
	genres := make(map[string]struct{})
	years := make(map[int]struct{})

	for i := range e.items {
		it := &e.items[i]
		if _, dup := e.byID[it.ID]; dup {
			return fmt.Errorf("%w: id %d", ErrDuplicateItem, it.ID)
		}
		if _, dup := e.byTitle[it.Title]; dup {
			return fmt.Errorf("%w: title %q", ErrDuplicateItem, it.Title)
		}
		e.byID[it.ID] = i
		e.byTitle[it.Title] = i
		e.titles = append(e.titles, it.Title)

		for _, tag := range it.Tags {
			genres[tag] = struct{}{}
		}
		if it.Year != 0 {
			years[it.Year] = struct{}{}
		}
	}

	e.genres = make([]string, 0, len(genres))
	for g := range genres {
		e.genres = append(e.genres, g)
	}
	sort.Strings(e.genres)

	e.years = make([]int, 0, len(years))
	for y := range years {
		e.years = append(e.years, y)
	}
	sort.Ints(e.years)
	sort.Strings(e.titles)

	return nil
}

// catalogRatings returns the ratings whose item is in the catalog and the
// number dropped. The input slice is returned as is when nothing is dropped.
func (e *Engine) catalogRatings(ratings []Rating) ([]Rating, int) {
	kept := 0
	for _, r := range ratings {
		if _, ok := e.byID[r.ItemID]; ok {
			kept++
		}
	}
	if kept == len(ratings) {
		return ratings, 0
	}

	out := make([]Rating, 0, kept)
	for _, r := range ratings {
		if _, ok := e.byID[r.ItemID]; ok {
			out = append(out, r)
		}
	}
	return out, len(ratings) - kept
}

// indexRatings accumulates per-item rating stats over every observation.
func (e *Engine) indexRatings(ratings []Rating) {
	e.stats = make(map[int]RatingStats)
	for _, r := range ratings {
		s := e.stats[r.ItemID]
		s.Sum += r.Value
		s.Count++
		e.stats[r.ItemID] = s
	}
}

// RecommendByContent returns items similar to the query item by tags,
// filtered by q.Filter. An unknown item yields OutcomeUnknownItem with an
// empty list. The only error is an invalid filter.
//
//nolint:gocritic // hugeParam: query passed by value for immutability
func (e *Engine) RecommendByContent(ctx context.Context, q ContentQuery) (*Result, error) {
	if err := q.Filter.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	num := e.resolveNum(q.Num)
	logger := e.queryLogger(ctx, ModeContent)

	item, ok := e.resolveItem(q.Title, q.ItemID)
	if !ok {
		logger.Debug().Str("title", q.Title).Int("item_id", q.ItemID).Msg("unknown query item")
		return observe(newResult(ModeContent, OutcomeUnknownItem), start), nil
	}

	neighbors := e.content.Nearest(item.ID, num)
	candidates := make([]Candidate, 0, len(neighbors))
	for _, n := range neighbors {
		it, ok := e.Item(n.ID)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{
			Item:     it,
			Score:    1 - n.Distance,
			Distance: n.Distance,
		})
	}

	res := e.finish(ModeContent, candidates, &q.Filter)
	logger.Debug().
		Int("item_id", item.ID).
		Int("num", num).
		Int("candidates", res.Candidates).
		Int("returned", len(res.Items)).
		Str("outcome", res.Outcome.String()).
		Msg("content recommendation complete")
	return observe(res, start), nil
}

// RecommendByCollaboration returns items rated highly by the users nearest
// to q.UserID, filtered by q.Filter. An unknown user yields
// OutcomeUnknownUser with an empty list.
//
//nolint:gocritic // hugeParam: query passed by value for immutability
func (e *Engine) RecommendByCollaboration(ctx context.Context, q CollaborativeQuery) (*Result, error) {
	if err := q.Filter.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	num := e.resolveNum(q.Num)
	logger := e.queryLogger(ctx, ModeCollaborative)

	if !e.HasUser(q.UserID) {
		logger.Debug().Int("user_id", q.UserID).Msg("unknown query user")
		return observe(newResult(ModeCollaborative, OutcomeUnknownUser), start), nil
	}

	k := e.resolveNeighbors(q.Neighbors, num)
	scores := e.collab.Scores(q.UserID, k, num)
	candidates := make([]Candidate, 0, len(scores))
	for _, s := range scores {
		it, ok := e.Item(s.ItemID)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{
			Item:    it,
			Score:   s.Score,
			Support: s.Count,
		})
	}

	res := e.finish(ModeCollaborative, candidates, &q.Filter)
	res.Neighbors = k
	logger.Debug().
		Int("user_id", q.UserID).
		Int("num", num).
		Int("neighbors", k).
		Int("candidates", res.Candidates).
		Int("returned", len(res.Items)).
		Str("outcome", res.Outcome.String()).
		Msg("collaborative recommendation complete")
	return observe(res, start), nil
}

// finish merges rating stats, runs the filter pipeline and classifies the outcome.
func (e *Engine) finish(mode Mode, candidates []Candidate, opts *FilterOptions) *Result {
	MergeStats(candidates, e.stats)
	kept := ApplyFilters(candidates, opts.Filters())

	res := newResult(mode, OutcomeOK)
	res.Candidates = len(candidates)
	switch {
	case len(candidates) == 0:
		res.Outcome = OutcomeNoCandidates
	case len(kept) == 0:
		res.Outcome = OutcomeNoMatch
	}

	for i := range kept {
		res.Items = append(res.Items, toRecommendation(&kept[i]))
	}
	return res
}

func observe(res *Result, start time.Time) *Result {
	metrics.RecordRecommendation(res.Mode.String(), res.Outcome.String(), len(res.Items), time.Since(start))
	return res
}

func newResult(mode Mode, outcome Outcome) *Result {
	return &Result{Mode: mode, Outcome: outcome, Items: []Recommendation{}}
}

func toRecommendation(c *Candidate) Recommendation {
	r := Recommendation{
		ItemID:      c.Item.ID,
		Title:       c.Item.Title,
		Tags:        slices.Clone(c.Item.Tags),
		Year:        c.Item.Year,
		Score:       c.Score,
		Distance:    c.Distance,
		Support:     c.Support,
		RatingCount: c.RatingCount,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	if c.HasMean {
		mean := c.MeanRating
		r.MeanRating = &mean
	}
	return r
}

// resolveNum applies the default and clamps to the configured maximum.
func (e *Engine) resolveNum(num int) int {
	if num <= 0 {
		num = e.config.Limits.DefaultNum
	}
	if num > e.config.Limits.MaxNum {
		num = e.config.Limits.MaxNum
	}
	return num
}

// resolveNeighbors picks the neighbor count: query override, then config,
// then num itself.
func (e *Engine) resolveNeighbors(override, num int) int {
	if override > 0 {
		return override
	}
	if e.config.Collaborative.Neighbors > 0 {
		return e.config.Collaborative.Neighbors
	}
	return num
}

// resolveItem looks up the query item by title, falling back to id.
func (e *Engine) resolveItem(title string, id int) (Item, bool) {
	if title != "" {
		return e.ItemByTitle(title)
	}
	return e.Item(id)
}

func (e *Engine) queryLogger(ctx context.Context, mode Mode) zerolog.Logger {
	lc := e.logger.With().Str("mode", mode.String())
	if id := logging.RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	return lc.Logger()
}

// Item returns the item with the given id.
func (e *Engine) Item(id int) (Item, bool) {
	i, ok := e.byID[id]
	if !ok {
		return Item{}, false
	}
	return e.items[i], true
}

// ItemByTitle returns the item with the given exact title.
func (e *Engine) ItemByTitle(title string) (Item, bool) {
	i, ok := e.byTitle[title]
	if !ok {
		return Item{}, false
	}
	return e.items[i], true
}

// MeanRating returns the mean over all observations of an item.
func (e *Engine) MeanRating(itemID int) (float64, bool) {
	return e.stats[itemID].Mean()
}

// RatingStats returns the rating sum and count of an item.
func (e *Engine) RatingStats(itemID int) RatingStats {
	return e.stats[itemID]
}

// HasUser reports whether the user has a row in the rating matrix.
func (e *Engine) HasUser(userID int) bool {
	_, found := slices.BinarySearch(e.users, userID)
	return found
}

// Genres returns the sorted distinct tags across the catalog.
func (e *Engine) Genres() []string {
	return slices.Clone(e.genres)
}

// Years returns the sorted distinct known release years. Unknown (0) is excluded.
func (e *Engine) Years() []int {
	return slices.Clone(e.years)
}

// UserIDs returns the sorted distinct user ids in the rating matrix.
func (e *Engine) UserIDs() []int {
	return slices.Clone(e.users)
}

// Titles returns the sorted item titles.
func (e *Engine) Titles() []string {
	return slices.Clone(e.titles)
}

// Stats describes the engine.
func (e *Engine) Stats() EngineStats {
	return EngineStats{
		Items:         len(e.items),
		Users:         len(e.users),
		Ratings:       e.ratings,
		Tags:          len(e.genres),
		Years:         len(e.years),
		ContentIndex:  e.content.Name(),
		UserIndex:     e.collab.Name(),
		BuiltAt:       e.builtAt,
		BuildDuration: e.buildDuration,
	}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
