package inventory

import (
	"sync"
	"time"
)

type cacheEntry struct {
	products []Product
	expires  time.Time
}

// Cache memoizes products per style for a fixed TTL. Expired entries are dropped when
// they are looked up.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached products of styleID if they have not expired.
func (c *Cache) Get(styleID string) ([]Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[styleID]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, styleID)
		return nil, false
	}
	return e.products, true
}

// Set stores products for styleID.
func (c *Cache) Set(styleID string, products []Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[styleID] = cacheEntry{products: products, expires: c.now().Add(c.ttl)}
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len is the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
