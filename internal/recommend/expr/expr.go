// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package expr compiles CEL (Common Expression Language) predicates into
// post-filters for the recommendation engine.
//
// Expressions see a single variable, item, with these fields:
//
//	item.id            int
//	item.title         string
//	item.tags          list(string)
//	item.year          int     (0 when unknown)
//	item.score         double  (similarity or mean neighbor rating)
//	item.mean_rating   double  (0 when the item was never rated)
//	item.rating_count  int
//	item.has_mean      bool
//
// Examples:
//
//	item.year >= 1990 && "Comedy" in item.tags
//	item.has_mean && item.mean_rating >= 4.0 && item.rating_count > 10
//	item.title.startsWith("The ")
//
// An expression must evaluate to a bool. Candidates whose evaluation fails
// are dropped.
package expr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

const (
	// MaxLength is the longest accepted expression source.
	MaxLength = 1024

	// maxCost bounds the evaluation cost of a single candidate.
	maxCost = 10_000
)

// ErrInvalidExpression is returned for expressions that fail to compile.
var ErrInvalidExpression = errors.New("expr: invalid expression")

var (
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func env() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.MapType(cel.StringType, cel.DynType)),
			cel.CrossTypeNumericComparisons(true),
		)
	})
	return celEnv, celEnvErr
}

// Expression is a compiled predicate. It is safe for concurrent use.
type Expression struct {
	source string
	prg    cel.Program
}

// Compile parses and type-checks src.
func Compile(src string) (*Expression, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}
	if len(src) > MaxLength {
		return nil, fmt.Errorf("%w: longer than %d bytes", ErrInvalidExpression, MaxLength)
	}

	e, err := env()
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}

	ast, issues := e.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("%w: must return bool, got %s", ErrInvalidExpression, out)
	}

	prg, err := e.Program(ast, cel.EvalOptions(cel.OptOptimize), cel.CostLimit(maxCost))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	return &Expression{source: src, prg: prg}, nil
}

// String returns the expression source.
func (x *Expression) String() string {
	return x.source
}

// Name implements recommend.Filter.
func (x *Expression) Name() string {
	return "expr"
}

// Eval evaluates the expression against a candidate.
func (x *Expression) Eval(c *recommend.Candidate) (bool, error) {
	out, _, err := x.prg.Eval(map[string]interface{}{"item": activation(c)})
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", x.source, err)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("evaluate %q: result is %T, not bool", x.source, out.Value())
	}
	return b, nil
}

// Keep implements recommend.Filter. Evaluation errors drop the candidate.
func (x *Expression) Keep(c *recommend.Candidate) bool {
	ok, err := x.Eval(c)
	return err == nil && ok
}

func activation(c *recommend.Candidate) map[string]interface{} {
	tags := c.Item.Tags
	if tags == nil {
		tags = []string{}
	}
	mean := 0.0
	if c.HasMean {
		mean = c.MeanRating
	}
	return map[string]interface{}{
		"id":           int64(c.Item.ID),
		"title":        c.Item.Title,
		"tags":         tags,
		"year":         int64(c.Item.Year),
		"score":        c.Score,
		"mean_rating":  mean,
		"rating_count": int64(c.RatingCount),
		"has_mean":     c.HasMean,
	}
}

var _ recommend.Filter = (*Expression)(nil)
