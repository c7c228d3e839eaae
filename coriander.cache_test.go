package coriander

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPattern(source string) *Pattern {
	return &Pattern{source: source, seq: NewSequence()}
}

func TestNewPatternCache_Defaults(t *testing.T) {
	cache := NewPatternCache(PatternCacheConfig{})
	assert.Equal(t, DefaultPatternCacheConfig(), cache.config)
}

func TestPatternCache_GetSet(t *testing.T) {
	cache := NewPatternCache(DefaultPatternCacheConfig())
	p := newTestPattern("a*")

	_, ok := cache.Get("a*")
	assert.False(t, ok)

	cache.Set("a*", p)
	got, ok := cache.Get("a*")
	require.True(t, ok)
	assert.Same(t, p, got)

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.EntryCount)
	assert.InDelta(t, 0.5, cache.HitRate(), 0.0001)
}

func TestPatternCache_Expiry(t *testing.T) {
	cache := NewPatternCache(PatternCacheConfig{TTL: time.Millisecond})
	cache.Set("a", newTestPattern("a"))
	cache.Set("b", newTestPattern("b"))

	time.Sleep(5 * time.Millisecond)

	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Cleanup())
	assert.Equal(t, 0, cache.Stats().EntryCount)
}

func TestPatternCache_Eviction(t *testing.T) {
	cache := NewPatternCache(PatternCacheConfig{MaxEntries: 2})
	cache.Set("a", newTestPattern("a"))
	cache.Set("b", newTestPattern("b"))
	cache.Set("c", newTestPattern("c"))

	_, ok := cache.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = cache.Get("c")
	assert.True(t, ok)
	assert.Equal(t, int64(1), cache.Stats().Evictions)

	t.Run("skips invalidated keys", func(t *testing.T) {
		cache.Invalidate("b")
		cache.Set("d", newTestPattern("d"))
		cache.Set("e", newTestPattern("e"))

		_, ok := cache.Get("c")
		assert.False(t, ok)
		_, ok = cache.Get("d")
		assert.True(t, ok)
		_, ok = cache.Get("e")
		assert.True(t, ok)
	})
}

func TestPatternCache_Eviction_ReinsertedKeyIsNewest(t *testing.T) {
	cache := NewPatternCache(PatternCacheConfig{MaxEntries: 2})
	cache.Set("a", newTestPattern("a"))
	cache.Set("b", newTestPattern("b"))
	cache.Invalidate("a")
	cache.Set("a", newTestPattern("a"))
	cache.Set("c", newTestPattern("c"))

	_, ok := cache.Get("b")
	assert.False(t, ok, "b is the oldest live entry")
	_, ok = cache.Get("a")
	assert.True(t, ok, "re-inserted a is newer than b")
	_, ok = cache.Get("c")
	assert.True(t, ok)
	assert.Equal(t, []string{cache.makeKey("a"), cache.makeKey("c")}, cache.evictList)
}

func TestPatternCache_EvictListTracksEntries(t *testing.T) {
	t.Run("cleanup", func(t *testing.T) {
		cache := NewPatternCache(PatternCacheConfig{TTL: time.Nanosecond, MaxEntries: 4})
		keys := []string{"a", "b", "c"}
		for i := 0; i < 1000; i++ {
			cache.Set(keys[i%len(keys)], newTestPattern(keys[i%len(keys)]))
			time.Sleep(time.Microsecond)
			cache.Cleanup()
		}

		assert.Empty(t, cache.entries)
		assert.Empty(t, cache.evictList)
	})

	t.Run("expired on get", func(t *testing.T) {
		cache := NewPatternCache(PatternCacheConfig{TTL: time.Nanosecond, MaxEntries: 4})
		for i := 0; i < 100; i++ {
			cache.Set("a", newTestPattern("a"))
			time.Sleep(time.Microsecond)
			_, ok := cache.Get("a")
			require.False(t, ok)
		}

		assert.Empty(t, cache.entries)
		assert.Empty(t, cache.evictList)
	})

	t.Run("invalidate", func(t *testing.T) {
		cache := NewPatternCache(PatternCacheConfig{MaxEntries: 4})
		for i := 0; i < 100; i++ {
			cache.Set("a", newTestPattern("a"))
			cache.Invalidate("a")
		}
		cache.Invalidate("missing")

		assert.Empty(t, cache.entries)
		assert.Empty(t, cache.evictList)
	})
}

func TestPatternCache_MaxTemplateSize(t *testing.T) {
	cache := NewPatternCache(PatternCacheConfig{MaxTemplateSize: 4})
	long := strings.Repeat("x", 5)

	cache.Set(long, newTestPattern(long))
	_, ok := cache.Get(long)
	assert.False(t, ok)
}

func TestPatternCache_Clear(t *testing.T) {
	cache := NewPatternCache(DefaultPatternCacheConfig())
	cache.Set("a", newTestPattern("a"))
	cache.Clear()

	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Stats().EntryCount)
}

func TestPatternCache_KeysAreDistinct(t *testing.T) {
	cache := NewPatternCache(DefaultPatternCacheConfig())
	assert.NotEqual(t, cache.makeKey("a*"), cache.makeKey("a* "))
	assert.Len(t, cache.makeKey("a*"), 32)
}
