package cache

import (
	"context"
	"path"
	"strings"
	"sync"
	"time"
)

// cleanupInterval is how often expired entries are swept
const cleanupInterval = time.Minute

// MemoryCache is an in-process cache used when no Redis address is configured
type MemoryCache struct {
	mu       sync.RWMutex
	items    map[string]cacheItem
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		items:    make(map[string]cacheItem),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[key]
	if !ok || !c.now().Before(item.expiresAt) {
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.items == nil {
		return nil
	}
	c.items[key] = cacheItem{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// DeleteByPattern removes keys matching a Redis-style glob (*, ? and [...]).
func (c *MemoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if matchPattern(pattern, key) {
			delete(c.items, key)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stopChan)
		c.mu.Lock()
		c.items = nil
		c.mu.Unlock()
	})
	return nil
}

func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *MemoryCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, item := range c.items {
		if !now.Before(item.expiresAt) {
			delete(c.items, key)
		}
	}
}

// matchPattern matches Redis-style patterns. '/' is swapped out first so that '*' spans it
// the way it does in Redis.
func matchPattern(pattern, key string) bool {
	ok, err := path.Match(strings.ReplaceAll(pattern, "/", "\x00"), strings.ReplaceAll(key, "/", "\x00"))
	return err == nil && ok
}
