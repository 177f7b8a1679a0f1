package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Cache provides in-memory caching with TTL for catalog responses.
type Cache struct {
	mu       sync.RWMutex
	items    map[string]cacheItem
	ttl      time.Duration
	maxItems int
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// CacheConfig holds cache configuration.
type CacheConfig struct {
	TTL      time.Duration
	MaxItems int
}

// DefaultCacheConfig returns default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:      15 * time.Minute,
		MaxItems: 1000,
	}
}

// NewCache creates a new cache with the given configuration.
func NewCache(cfg CacheConfig) *Cache {
	if cfg.TTL == 0 {
		cfg.TTL = 15 * time.Minute
	}
	if cfg.MaxItems == 0 {
		cfg.MaxItems = 1000
	}

	return &Cache{
		items:    make(map[string]cacheItem),
		ttl:      cfg.TTL,
		maxItems: cfg.MaxItems,
	}
}

// Get retrieves an item from the cache.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

// Set stores an item in the cache.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.maxItems {
		c.evictExpired()
	}
	// Expired eviction may free nothing when every entry is still live.
	for len(c.items) >= c.maxItems {
		c.evictOldest()
	}

	c.items[key] = cacheItem{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheItem)
}

// Len returns the number of items in the cache.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictExpired removes expired items; must be called with the lock held.
func (c *Cache) evictExpired() {
	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}

// evictOldest removes the entry closest to expiry; must be called with
// the lock held. With a fixed TTL that is the oldest insertion.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	for key, item := range c.items {
		if oldestKey == "" || item.expiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// CachedClient wraps a Client with a read-through response cache.
// Errors are never cached.
type CachedClient struct {
	inner Client
	cache *Cache
}

// NewCachedClient creates a caching wrapper around a catalog client.
func NewCachedClient(inner Client, cfg CacheConfig) *CachedClient {
	return &CachedClient{
		inner: inner,
		cache: NewCache(cfg),
	}
}

func (c *CachedClient) Discover(ctx context.Context, req DiscoverRequest) ([]Record, error) {
	key := discoverKey(req)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]Record), nil
	}

	records, err := c.inner.Discover(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, records)
	return records, nil
}

func (c *CachedClient) Search(ctx context.Context, query string) ([]Record, error) {
	key := "search|" + query
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]Record), nil
	}

	records, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, records)
	return records, nil
}

func (c *CachedClient) SearchPerson(ctx context.Context, name string) ([]Person, error) {
	key := "person|" + name
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]Person), nil
	}

	people, err := c.inner.SearchPerson(ctx, name)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, people)
	return people, nil
}

func (c *CachedClient) PersonCredits(ctx context.Context, personID int, kind MediaKind) ([]Credit, error) {
	key := fmt.Sprintf("credits|%d|%s", personID, kind)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]Credit), nil
	}

	credits, err := c.inner.PersonCredits(ctx, personID, kind)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, credits)
	return credits, nil
}

func discoverKey(req DiscoverRequest) string {
	years := ""
	if req.Years != nil {
		years = fmt.Sprintf("%d-%d", req.Years.From, req.Years.To)
	}
	return fmt.Sprintf("discover|%s|%v|%v|%s|%.1f|%d|%s|%s|%s",
		req.Kind, req.GenreIDs, req.ExcludeGenreIDs, years,
		req.MinRating, req.MinVotes, req.Language, req.Region, req.Sort)
}
