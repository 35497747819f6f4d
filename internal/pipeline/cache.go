// Package pipeline composes the effect processors over base layer
// states, memoizes results within a frame, and culls offstage layers.
package pipeline

import (
	"sync"

	"layerstage/internal/scene"
)

// FrameCache memoizes computed layer states within one rendered frame,
// keyed by layer identity. NextFrame invalidates the whole cache in
// O(1) by bumping an epoch counter instead of evicting entries.
//
// One cache instance belongs to one active render loop. Concurrent
// lookups for the same frame (several backends consulting the same
// layers) are safe; concurrent use across different frame identifiers
// is not supported.
type FrameCache struct {
	mu      sync.Mutex
	epoch   uint64
	entries map[string]cacheEntry
}

type cacheEntry struct {
	epoch uint64
	state scene.State
}

// NewFrameCache creates an empty cache at epoch zero.
func NewFrameCache() *FrameCache {
	return &FrameCache{entries: make(map[string]cacheEntry)}
}

// NextFrame atomically invalidates every cached state.
func (c *FrameCache) NextFrame() {
	c.mu.Lock()
	c.epoch++
	c.mu.Unlock()
}

// Lookup returns the cached state for a layer if it was computed in
// the current frame.
func (c *FrameCache) Lookup(id string) (scene.State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok || e.epoch != c.epoch {
		return scene.State{}, false
	}
	return e.state, true
}

// Store records a computed state for the current frame.
func (c *FrameCache) Store(id string, s scene.State) {
	c.mu.Lock()
	c.entries[id] = cacheEntry{epoch: c.epoch, state: s}
	c.mu.Unlock()
}
