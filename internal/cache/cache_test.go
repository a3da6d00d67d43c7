package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close() //nolint:errcheck
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close() //nolint:errcheck
	ctx := context.Background()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 30*time.Second))

	now = now.Add(29 * time.Second)
	_, err := c.Get(ctx, "k")
	assert.NoError(t, err)

	now = now.Add(time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_DeleteByPattern(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close() //nolint:errcheck
	ctx := context.Background()

	keys := []string{
		ViewKey("/api/summary", "period=30d"),
		ViewKey("/api/vendors", "period=7d"),
		"cache:other:1",
	}
	for _, k := range keys {
		require.NoError(t, c.Set(ctx, k, []byte("x"), time.Minute))
	}

	require.NoError(t, c.DeleteByPattern(ctx, KeyPrefixView+":*"))

	assert.Equal(t, 1, c.Len())
	_, err := c.Get(ctx, "cache:other:1")
	assert.NoError(t, err)
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		{"cache:view:*", "cache:view:/api/summary:period=30d", true},
		{"cache:view:*", "cache:other", false},
		{"cache:?iew:*", "cache:view:x", true},
		{"exact", "exact", true},
		{"exact", "exactly", false},
		{"", "", true},
		{"[", "[", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPattern(tt.pattern, tt.key), "%q vs %q", tt.pattern, tt.key)
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	c := NewMemoryCache()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))
	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNoOpCache(t *testing.T) {
	c := NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.DeleteByPattern(ctx, "*"))
	assert.NoError(t, c.Close())
}

func TestNew(t *testing.T) {
	c, err := New(Options{TTL: 0})
	require.NoError(t, err)
	assert.IsType(t, &NoOpCache{}, c)

	c, err = New(Options{TTL: time.Second, Disabled: true})
	require.NoError(t, err)
	assert.IsType(t, &NoOpCache{}, c)

	c, err = New(Options{TTL: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)
	require.NoError(t, c.Close())
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	_, err := NewRedisCache(Config{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis connection failed")
}

func TestViewKey(t *testing.T) {
	assert.Equal(t, "cache:view:/api/summary:period=7d", ViewKey("/api/summary", "period=7d"))
}

func TestLoader_CachesComputedValue(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close() //nolint:errcheck
	loader := NewLoader(c, time.Minute, nil)
	ctx := context.Background()

	calls := 0
	compute := func() ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	v, hit, err := loader.Load(ctx, "k", compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []byte("payload"), v)

	v, hit, err = loader.Load(ctx, "k", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("payload"), v)
	assert.Equal(t, 1, calls)
}

func TestLoader_ComputeErrorIsNotCached(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close() //nolint:errcheck
	loader := NewLoader(c, time.Minute, nil)
	boom := errors.New("boom")

	_, _, err := loader.Load(context.Background(), "k", func() ([]byte, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestLoader_CollapsesConcurrentMisses(t *testing.T) {
	loader := NewLoader(NewNoOpCache(), time.Minute, nil)

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func() ([]byte, error) {
		calls.Add(1)
		<-release
		return []byte("v"), nil
	}

	const callers = 8
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for range callers {
		go func() {
			defer done.Done()
			started.Done()
			_, _, err := loader.Load(context.Background(), "k", compute)
			assert.NoError(t, err)
		}()
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(callers))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestLoader_Invalidate(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close() //nolint:errcheck
	loader := NewLoader(c, 0, nil)
	ctx := context.Background()

	_, _, err := loader.Load(ctx, ViewKey("/api/summary", ""), func() ([]byte, error) { return []byte("v"), nil })
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	require.NoError(t, loader.Invalidate(ctx))
	assert.Equal(t, 0, c.Len())
}
