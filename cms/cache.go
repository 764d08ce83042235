package cms

import (
	"sync"
	"time"
)

// ResponseCache keeps successful response bodies per URL for a revalidation
// window. Failed requests are never stored, so an outage is retried on the
// next render.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	body    []byte
	fetched time.Time
}

// NewResponseCache creates a cache with the given window. A non-positive ttl
// disables caching.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{entries: make(map[string]cacheEntry), ttl: ttl}
}

func (c *ResponseCache) valid(e cacheEntry) bool {
	return e.body != nil && time.Since(e.fetched) < c.ttl
}

// Get returns the cached body for url if it is still fresh.
func (c *ResponseCache) Get(url string) ([]byte, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	e, ok := c.entries[url]
	c.mu.RUnlock()
	if !ok || !c.valid(e) {
		return nil, false
	}
	return e.body, true
}

// Store records a successful body for url.
func (c *ResponseCache) Store(url string, body []byte) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[url] = cacheEntry{body: body, fetched: time.Now()}
	c.mu.Unlock()
}

// Invalidate clears the cache so the next read triggers a fresh fetch.
func (c *ResponseCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
