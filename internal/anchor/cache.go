package anchor

import (
	"sync"

	"layerstage/internal/geom"
)

// key identifies one distinct mapping: image size + anchor angle pair.
type key struct {
	w, h      float64
	tip, base float64
}

// Cache memoizes mappings by (size, tip angle, base angle). The common
// case is many layers sharing one source image at the default 90°/270°
// anchors, so the hit rate is high. Safe for concurrent use.
//
// The cache is an explicit object owned by whoever builds the scene,
// never a package global, so independent stages and tests cannot
// cross-contaminate.
type Cache struct {
	mu    sync.RWMutex
	items map[key]Mapping
}

// NewCache creates an empty mapping cache.
func NewCache() *Cache {
	return &Cache{items: make(map[key]Mapping)}
}

// Get returns the mapping for the given inputs, computing and storing
// it on first request.
func (c *Cache) Get(width, height, tipAngle, baseAngle float64) Mapping {
	k := key{w: width, h: height, tip: tipAngle, base: baseAngle}

	c.mu.RLock()
	if m, ok := c.items[k]; ok {
		c.mu.RUnlock()
		return m
	}
	c.mu.RUnlock()

	m := Compute(geom.Size{Width: width, Height: height}, tipAngle, baseAngle)

	c.mu.Lock()
	if prev, ok := c.items[k]; ok {
		c.mu.Unlock()
		return prev
	}
	c.items[k] = m
	c.mu.Unlock()

	return m
}

// Len returns the number of cached mappings.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
