package asset

import (
	"image"
	"sync"

	"layerstage/internal/geom"
	"layerstage/internal/logging"
)

// Resolver resolves an image reference to a decoded NRGBA image.
type Resolver interface {
	Resolve(ref string) *image.NRGBA
}

// Cache is a concurrency-safe decode cache backed by an index. A nil
// image is cached for unresolvable or undecodable references so the
// disk is only consulted once per reference.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img    *image.NRGBA
	loaded bool // load was attempted (img may still be nil)
}

// NewCache creates an image cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches an image by reference. Returns nil if the
// reference cannot be resolved or decoded.
func (c *Cache) Resolve(ref string) *image.NRGBA {
	path, ok := c.index.ResolvePath(ref)
	if !ok {
		return nil
	}

	// Fast path: read lock.
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	img, err := LoadImage(path)
	if err != nil {
		logging.Logger().Warn("asset: load failed", "path", path, "error", err)
	}

	// Write lock with double-check.
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img, loaded: true}
	c.mu.Unlock()

	return img
}

// Dimensions returns the natural pixel dimensions of an image
// reference. Implements the scene's dimension-source boundary.
func (c *Cache) Dimensions(ref string) (geom.Size, bool) {
	img := c.Resolve(ref)
	if img == nil {
		return geom.Size{}, false
	}
	b := img.Bounds()
	return geom.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}, true
}
