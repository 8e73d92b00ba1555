package feed

import (
	"fmt"
	"sync"
	"time"
)

// CachedService wraps a Service with a TTL cache keyed on (offset, limit).
// Scrolling back and forth near the end of a window re-requests the same
// page several times in quick succession; the cache keeps that to one read.
//
// The cache is bounded by maxCacheEntries.
type CachedService struct {
	inner Service
	ttl   time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// maxCacheEntries caps the number of entries in the cache. When exceeded,
// expired entries are evicted, and if that is not enough the cache is
// flushed.
const maxCacheEntries = 64

type cacheEntry struct {
	page   Page
	err    error
	expiry time.Time
}

// Compile-time checks.
var (
	_ Service  = (*CachedService)(nil)
	_ Resetter = (*CachedService)(nil)
)

// NewCachedService wraps inner with a TTL cache. A ttl <= 0 disables
// caching but keeps Invalidate working.
func NewCachedService(inner Service, ttl time.Duration) *CachedService {
	return &CachedService{
		inner: inner,
		ttl:   ttl,
		cache: make(map[string]cacheEntry, 16),
	}
}

// Name delegates to the inner service.
func (c *CachedService) Name() string { return c.inner.Name() }

// Path delegates to the inner service.
func (c *CachedService) Path() string { return c.inner.Path() }

// Fetch returns a cached page when one is fresh.
func (c *CachedService) Fetch(offset, limit int) (Page, error) {
	key := fmt.Sprintf("fetch:%d:%d", offset, limit)
	if p, ok, err := c.get(key); ok {
		return p, err
	}
	p, err := c.inner.Fetch(offset, limit)
	c.set(key, p, err)
	return p, err
}

// Invalidate clears all cached entries and resets the inner service if it
// memoises its own data.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry, 16)
	c.mu.Unlock()
	if r, ok := c.inner.(Resetter); ok {
		r.Reset()
	}
}

// Reset is Invalidate.
func (c *CachedService) Reset() { c.Invalidate() }

func (c *CachedService) get(key string) (Page, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.cache[key]
	if !found || time.Now().After(e.expiry) {
		return Page{}, false, nil
	}
	return e.page, true, e.err
}

func (c *CachedService) set(key string, p Page, err error) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	// Evict expired entries if the cache is getting large.
	if len(c.cache) >= maxCacheEntries {
		now := time.Now()
		for k, e := range c.cache {
			if now.After(e.expiry) {
				delete(c.cache, k)
			}
		}
		if len(c.cache) >= maxCacheEntries {
			c.cache = make(map[string]cacheEntry, 16)
		}
	}
	c.cache[key] = cacheEntry{page: p, err: err, expiry: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}
