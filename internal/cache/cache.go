// Package cache stores rendered API responses for a short TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrCacheMiss is returned when a key is not found in cache
var ErrCacheMiss = errors.New("cache miss")

// KeyPrefixView prefixes every cached dashboard view
const KeyPrefixView = "cache:view"

// DefaultTTL is how long a view stays cached when no TTL is configured
const DefaultTTL = 30 * time.Second

// Cache interface for caching operations
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// DeleteByPattern removes all values matching a pattern (e.g., "cache:view:*")
	DeleteByPattern(ctx context.Context, pattern string) error

	// Close closes the cache connection
	Close() error
}

// ViewKey builds the key for a view rendered with the given canonical query.
func ViewKey(route, query string) string {
	return fmt.Sprintf("%s:%s:%s", KeyPrefixView, route, query)
}

// Options selects and configures a cache backend.
type Options struct {
	TTL      time.Duration // zero disables caching
	Redis    Config        // used when Redis.Addr is set
	Disabled bool
}

// New returns the backend described by opts: NoOpCache when disabled, RedisCache when a
// Redis address is set, MemoryCache otherwise.
func New(opts Options) (Cache, error) {
	switch {
	case opts.Disabled || opts.TTL <= 0:
		return NewNoOpCache(), nil
	case opts.Redis.Addr != "":
		return NewRedisCache(opts.Redis)
	default:
		return NewMemoryCache(), nil
	}
}

// Loader serves values from a Cache and computes misses once per key, however many
// callers ask at the same time.
type Loader struct {
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
	group  singleflight.Group
}

// NewLoader wraps c. A non-positive ttl uses DefaultTTL.
func NewLoader(c Cache, ttl time.Duration, logger *zap.Logger) *Loader {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{cache: c, ttl: ttl, logger: logger}
}

// Load returns the cached value for key or computes, stores and returns it. hit reports
// whether the value came from the cache. Cache failures are logged and never fail the load.
func (l *Loader) Load(ctx context.Context, key string, compute func() ([]byte, error)) (value []byte, hit bool, err error) {
	if cached, err := l.cache.Get(ctx, key); err == nil {
		return cached, true, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		l.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		computed, err := compute()
		if err != nil {
			return nil, err
		}
		if err := l.cache.Set(context.WithoutCancel(ctx), key, computed, l.ttl); err != nil {
			l.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
		return computed, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}

// Invalidate drops every cached view.
func (l *Loader) Invalidate(ctx context.Context) error {
	return l.cache.DeleteByPattern(ctx, KeyPrefixView+":*")
}
