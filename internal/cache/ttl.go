package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache is a bounded expiring key-value store. Every value shares the
// cache's TTL; once maxSize is reached the entry closest to expiry is
// evicted. A miss is returned both for never-set keys and for expired ones.
type TTLCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// NewTTLCache creates a cache holding at most maxSize entries for ttl each.
func NewTTLCache(maxSize int, ttl time.Duration) *TTLCache {
	return &TTLCache{
		maxSize: maxSize,
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the stored value, or ok=false on miss or expiry.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, silently overwriting. When the cache is full
// the entry with the earliest expiry is dropped first.
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Clear drops every entry.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Len returns the current entry count, expired entries included.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *TTLCache) evictLocked() {
	var victim string
	var earliest time.Time
	first := true
	for key, e := range c.entries {
		if first || e.expiresAt.Before(earliest) {
			victim = key
			earliest = e.expiresAt
			first = false
		}
	}
	if !first {
		delete(c.entries, victim)
	}
}
