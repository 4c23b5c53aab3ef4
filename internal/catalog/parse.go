// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// NoGenresListed is the MovieLens placeholder for an item without genres.
const NoGenresListed = "(no genres listed)"

var yearPattern = regexp.MustCompile(`\((\d{4})\)`)

// ParseYear extracts the first parenthesized four-digit year from a title,
// e.g. "Heat (1995)" -> 1995. Titles without one return 0.
func ParseYear(title string) int {
	m := yearPattern.FindStringSubmatch(title)
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return year
}

// SplitTags splits a pipe-delimited genre field into tags. Entries are
// trimmed; empty entries and NoGenresListed are dropped.
func SplitTags(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, "|")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == NoGenresListed {
			continue
		}
		tags = append(tags, p)
	}
	return tags
}

// cleanTags applies the SplitTags rules to an already split tag list.
func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" || t == NoGenresListed {
			continue
		}
		out = append(out, t)
	}
	return out
}
