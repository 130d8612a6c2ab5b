// Package cache is a keyed in-process cache with invalidation
// broadcast. Invalidating a key removes the entry and notifies every
// subscriber of that key, so mutations publish rather than poke other
// components' state directly.
package cache

import (
	"sync"

	"github.com/refero-hq/partnerctl/internal/logging"
)

// ProgramKey derives the cache key for a program's cached resources
// from its slug.
func ProgramKey(slug string) string {
	return "programs/" + slug
}

// Cache stores values by string key and broadcasts invalidations.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]V
	subs    map[string]map[int]chan string
	nextSub int
}

// New creates an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]V),
		subs:    make(map[string]map[int]chan string),
	}
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores a value under key.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate removes the entry for key and notifies subscribers of
// that key. Invalidating an absent key still broadcasts, since
// subscribers track remote state that may never have been cached
// locally.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	var targets []chan string
	for _, ch := range c.subs[key] {
		targets = append(targets, ch)
	}
	c.mu.Unlock()

	logging.Debug("cache invalidated", "key", key)

	for _, ch := range targets {
		select {
		case ch <- key:
		default:
		}
	}
}

// Subscribe registers for invalidations of key. The returned cancel
// function releases the subscription.
func (c *Cache[V]) Subscribe(key string) (<-chan string, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++

	if c.subs[key] == nil {
		c.subs[key] = make(map[int]chan string)
	}
	ch := make(chan string, 1)
	c.subs[key][id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[key], id)
		if len(c.subs[key]) == 0 {
			delete(c.subs, key)
		}
	}
	return ch, cancel
}
