// Package thumbcache provides the bounded thumbnail cache for image
// entries. It is a plain LRU keyed by image reference; decoding and scaling
// stay in the presentation layer, which stores whatever handle type it
// renders from.
package thumbcache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxSize bounds the cache when the configuration leaves it unset.
const DefaultMaxSize = 50

// Cache is a bounded LRU from image reference to a decoded thumbnail
// handle. Get marks the entry most-recently-used; Put evicts the
// least-recently-used entries once over capacity.
type Cache[V any] struct {
	lru *lru.Cache[string, V]
}

// New creates a cache holding at most maxSize thumbnails. Non-positive
// sizes fall back to DefaultMaxSize.
func New[V any](maxSize int) *Cache[V] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	// lru.New only errors on a non-positive size, which is ruled out above.
	c, err := lru.New[string, V](maxSize)
	if err != nil {
		panic(err)
	}
	return &Cache[V]{lru: c}
}

// Get returns the cached thumbnail for ref. On a miss the caller decodes
// and calls Put.
func (c *Cache[V]) Get(ref string) (V, bool) {
	return c.lru.Get(ref)
}

// Put inserts or updates the thumbnail for ref, evicting the
// least-recently-used entry if the cache is full.
func (c *Cache[V]) Put(ref string, thumb V) {
	c.lru.Add(ref, thumb)
}

// Invalidate drops the entry for ref, if present. Used when the underlying
// image or history entry is deleted.
func (c *Cache[V]) Invalidate(ref string) {
	c.lru.Remove(ref)
}

// Len returns the number of cached thumbnails.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}
