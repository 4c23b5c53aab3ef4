// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"runtime"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains result size limits.
	Limits LimitsConfig `json:"limits"`

	// Collaborative contains parameters for the user-user index.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// MinRating and MaxRating bound valid rating values. Rating ranges
	// passed to the filter pipeline are not clamped to these bounds; they
	// are used to validate configuration defaults.
	MinRating float64 `json:"min_rating"`
	MaxRating float64 `json:"max_rating"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultNum is the number of neighbors retrieved when a query leaves Num unset.
	// Default: 10.
	DefaultNum int `json:"default_num"`

	// MaxNum is the maximum allowed Num value. Larger values are clamped.
	// Default: 100.
	MaxNum int `json:"max_num"`
}

// CollaborativeConfig contains parameters for collaborative retrieval.
type CollaborativeConfig struct {
	// Neighbors is the number of nearest users whose ratings are aggregated.
	// Zero means "same as the requested Num".
	// Default: 0.
	Neighbors int `json:"neighbors"`

	// NumWorkers is the number of goroutines used to scan the rating
	// matrix for a single query.
	// Default: runtime.NumCPU().
	NumWorkers int `json:"num_workers"`

	// ParallelThreshold is the minimum number of users before a scan is
	// split across workers.
	// Default: 2048.
	ParallelThreshold int `json:"parallel_threshold"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultNum: 10,
			MaxNum:     100,
		},
		Collaborative: CollaborativeConfig{
			Neighbors:         0,
			NumWorkers:        runtime.NumCPU(),
			ParallelThreshold: 2048,
		},
		MinRating: 0.5,
		MaxRating: 5.0,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultNum < 1 {
		return fmt.Errorf("limits.default_num must be positive, got %d", c.Limits.DefaultNum)
	}
	if c.Limits.MaxNum < c.Limits.DefaultNum {
		return fmt.Errorf("limits.max_num must be >= limits.default_num, got %d < %d", c.Limits.MaxNum, c.Limits.DefaultNum)
	}

	if c.Collaborative.Neighbors < 0 {
		return fmt.Errorf("collaborative.neighbors must be non-negative, got %d", c.Collaborative.Neighbors)
	}
	if c.Collaborative.NumWorkers < 1 {
		return fmt.Errorf("collaborative.num_workers must be positive, got %d", c.Collaborative.NumWorkers)
	}
	if c.Collaborative.ParallelThreshold < 0 {
		return fmt.Errorf("collaborative.parallel_threshold must be non-negative, got %d", c.Collaborative.ParallelThreshold)
	}

	if c.MinRating > c.MaxRating {
		return fmt.Errorf("min_rating must be <= max_rating, got %g > %g", c.MinRating, c.MaxRating)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
