package spotify

import (
	"sync"
	"time"
)

// CacheTTL is the duration after which a cached search result is considered stale.
const CacheTTL = 24 * time.Hour

type cacheEntry struct {
	match     *Match // nil records a confirmed miss
	fetchedAt time.Time
}

// matchCache is an in-memory search cache keyed by query.
// Stale entries are dropped lazily on lookup.
type matchCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newMatchCache(ttl time.Duration) *matchCache {
	return &matchCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the cached match and whether the entry was present and fresh.
func (c *matchCache) get(query string) (*Match, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[query]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) > c.ttl {
		delete(c.entries, query)
		return nil, false
	}
	return e.match, true
}

func (c *matchCache) put(query string, m *Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[query] = cacheEntry{match: m, fetchedAt: c.now()}
}
