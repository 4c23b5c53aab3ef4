// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "errors"

var (
	// ErrEmptyCatalog is returned when a build input has no items.
	ErrEmptyCatalog = errors.New("recommend: catalog has no items")

	// ErrNoUsers is returned when a build input has no rating users.
	ErrNoUsers = errors.New("recommend: catalog has no rating users")

	// ErrDuplicateItem is returned when two items share an id or a title.
	ErrDuplicateItem = errors.New("recommend: duplicate item")

	// ErrInvalidRatingRange is returned for a rating range with Min > Max or NaN bounds.
	ErrInvalidRatingRange = errors.New("recommend: invalid rating range")

	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("recommend: invalid config")
)
