package coriander

import (
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// PatternCache keeps compiled patterns keyed by template source so repeated
// Match/Generate calls on raw templates skip compilation. It lives in memory
// only and is safe for concurrent use.
type PatternCache struct {
	mu        sync.RWMutex
	entries   map[string]*patternCacheEntry
	config    PatternCacheConfig
	stats     PatternCacheStats
	evictList []string // FIFO order of insertion
}

// patternCacheEntry holds a cached pattern with metadata.
type patternCacheEntry struct {
	Pattern   *Pattern
	CreatedAt time.Time
	ExpiresAt time.Time
	HitCount  int
}

// PatternCacheConfig configures the pattern cache behavior.
type PatternCacheConfig struct {
	// TTL is how long patterns stay cached. Default: 10 minutes.
	TTL time.Duration

	// MaxEntries is the maximum number of cached patterns. Default: 1000.
	MaxEntries int

	// MaxTemplateSize is the largest template (bytes) that is cached. Default: 64KB.
	MaxTemplateSize int
}

// PatternCacheStats tracks cache performance metrics.
type PatternCacheStats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	EntryCount int
}

// DefaultPatternCacheConfig returns sensible defaults for pattern caching.
func DefaultPatternCacheConfig() PatternCacheConfig {
	return PatternCacheConfig{
		TTL:             DefaultCacheTTL,
		MaxEntries:      DefaultCacheMaxEntries,
		MaxTemplateSize: DefaultCacheMaxTemplateSize,
	}
}

// NewPatternCache creates a new pattern cache.
func NewPatternCache(config PatternCacheConfig) *PatternCache {
	if config.TTL == 0 {
		config.TTL = DefaultCacheTTL
	}
	if config.MaxEntries == 0 {
		config.MaxEntries = DefaultCacheMaxEntries
	}
	if config.MaxTemplateSize == 0 {
		config.MaxTemplateSize = DefaultCacheMaxTemplateSize
	}

	return &PatternCache{
		entries:   make(map[string]*patternCacheEntry),
		config:    config,
		evictList: make([]string, 0, config.MaxEntries),
	}
}

// Get retrieves a cached pattern if available and not expired.
func (c *PatternCache) Get(template string) (*Pattern, bool) {
	key := c.makeKey(template)

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		c.stats.Misses++
		c.mu.Unlock()
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && current == entry {
			c.remove(key)
		}
		c.stats.Misses++
		c.stats.EntryCount = len(c.entries)
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	entry.HitCount++
	c.stats.Hits++
	c.mu.Unlock()

	return entry.Pattern, true
}

// Set stores a compiled pattern.
func (c *PatternCache) Set(template string, pattern *Pattern) {
	if len(template) > c.config.MaxTemplateSize {
		return
	}

	key := c.makeKey(template)
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.config.MaxEntries {
			c.evictOldest()
		}
		c.evictList = append(c.evictList, key)
	}

	c.entries[key] = &patternCacheEntry{
		Pattern:   pattern,
		CreatedAt: now,
		ExpiresAt: now.Add(c.config.TTL),
	}
	c.stats.EntryCount = len(c.entries)
}

// Invalidate removes the entry for one template.
func (c *PatternCache) Invalidate(template string) {
	key := c.makeKey(template)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.remove(key)
	}
	c.stats.EntryCount = len(c.entries)
}

// Clear removes all entries from the cache.
func (c *PatternCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*patternCacheEntry)
	c.evictList = make([]string, 0, c.config.MaxEntries)
	c.stats.EntryCount = 0
}

// Stats returns current cache statistics.
func (c *PatternCache) Stats() PatternCacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (c *PatternCache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.stats.Hits + c.stats.Misses
	if total == 0 {
		return 0
	}
	return float64(c.stats.Hits) / float64(total)
}

// Cleanup removes expired entries. Call periodically for long-running applications.
func (c *PatternCache) Cleanup() int {
	now := time.Now()
	removed := 0

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			c.remove(key)
			removed++
		}
	}
	c.stats.EntryCount = len(c.entries)
	return removed
}

// makeKey hashes the template so long templates make short keys.
func (c *PatternCache) makeKey(template string) string {
	sum := blake2b.Sum256([]byte(template))
	return hex.EncodeToString(sum[:16])
}

// remove deletes an entry and its place in the FIFO order. Callers hold mu.
func (c *PatternCache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.evictList {
		if k == key {
			c.evictList = append(c.evictList[:i], c.evictList[i+1:]...)
			return
		}
	}
}

// evictOldest removes the oldest live entry (FIFO). evictList holds exactly
// the keys in entries, in insertion order.
func (c *PatternCache) evictOldest() {
	if len(c.evictList) == 0 {
		return
	}
	c.remove(c.evictList[0])
	c.stats.Evictions++
}
