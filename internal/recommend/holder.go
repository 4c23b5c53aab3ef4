// ReelMatch - Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "sync/atomic"

// Holder publishes the current Engine to request handlers. A catalog
// reload builds a complete new Engine and swaps it in; readers holding the
// previous Engine keep using it until their request finishes.
type Holder struct {
	engine atomic.Pointer[Engine]
}

// NewHolder returns a Holder publishing e, which may be nil.
func NewHolder(e *Engine) *Holder {
	h := &Holder{}
	if e != nil {
		h.engine.Store(e)
	}
	return h
}

// Current returns the published engine, or nil before the first build.
func (h *Holder) Current() *Engine {
	return h.engine.Load()
}

// Swap publishes e and returns the previous engine.
func (h *Holder) Swap(e *Engine) *Engine {
	return h.engine.Swap(e)
}
