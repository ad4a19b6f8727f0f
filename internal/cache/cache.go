// Package cache is a small in-memory store with per-entry expiration. The
// web layer uses it to hold live form sessions keyed by session cookie, so
// abandoned sessions disappear on their own.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache stores values for a fixed time-to-live.
type Cache struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry
}

// New creates a cache whose entries expire ttl after their last Set.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl: ttl,
		m:   make(map[string]entry),
	}
	go c.janitor()
	return c
}

// Set stores value under key, resetting its expiration.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Get returns the value stored under key, or false if absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Delete removes the entry under key, if any.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
}

func (c *Cache) janitor() {
	interval := c.ttl
	if interval > time.Minute {
		interval = time.Minute
	}
	for range time.Tick(interval) {
		now := time.Now()
		c.mu.Lock()
		for k, e := range c.m {
			if now.After(e.expiresAt) {
				delete(c.m, k)
			}
		}
		c.mu.Unlock()
	}
}
