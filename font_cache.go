package figfont

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// FontCache is a concurrency-safe LRU cache of parsed fonts for
// long-running processes. Fonts loaded from files are keyed by path; fonts
// parsed from memory are keyed by the SHA-256 of their content, prefixed
// with "sha256:" so the two key spaces never collide.
//
// Entries are kept in a linked hash map in recency order: the first entry
// is the least recently used one and is evicted when the cache is full.
type FontCache struct {
	mu        sync.Mutex
	fonts     *linkedhashmap.Map // string -> *Font
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// Global default cache for convenience
var (
	defaultCacheMu sync.RWMutex
	defaultCache   = NewFontCache(100)
)

// NewFontCache creates a cache holding at most maxSize fonts. A maxSize of
// 0 or less means unlimited.
func NewFontCache(maxSize int) *FontCache {
	return &FontCache{
		fonts:   linkedhashmap.New(),
		maxSize: maxSize,
	}
}

func currentDefaultCache() *FontCache {
	defaultCacheMu.RLock()
	defer defaultCacheMu.RUnlock()
	return defaultCache
}

// LoadFontCached loads a font file through the default cache.
func LoadFontCached(path string) (*Font, error) {
	return currentDefaultCache().LoadFont(path)
}

// ParseFontCached parses font data through the default cache.
func ParseFontCached(data []byte) (*Font, error) {
	return currentDefaultCache().ParseFont(data)
}

// LoadFont returns the cached font for path, loading it on a miss. Failed
// loads are not cached.
func (c *FontCache) LoadFont(path string) (*Font, error) {
	if font := c.get(path); font != nil {
		return font, nil
	}
	font, err := LoadFont(path)
	if err != nil {
		return nil, err
	}
	c.put(path, font)
	return font, nil
}

// ParseFont returns the cached font for data, parsing it on a miss.
// Identical content shares one entry whatever its source.
func (c *FontCache) ParseFont(data []byte) (*Font, error) {
	hash := sha256.Sum256(data)
	key := "sha256:" + hex.EncodeToString(hash[:])

	if font := c.get(key); font != nil {
		return font, nil
	}
	font, err := ParseFontBytes(data)
	if err != nil {
		return nil, err
	}
	c.put(key, font)
	return font, nil
}

// get returns the cached font for key and marks it most recently used.
func (c *FontCache) get(key string) *Font {
	c.mu.Lock()
	v, ok := c.fonts.Get(key)
	if ok {
		// re-inserting moves the entry to the back of the recency order
		c.fonts.Remove(key)
		c.fonts.Put(key, v)
	}
	c.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return nil
	}
	c.hits.Add(1)
	return v.(*Font)
}

// put stores font under key, evicting the least recently used entry when
// the cache is full. An existing entry for key is kept.
func (c *FontCache) put(key string, font *Font) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.fonts.Get(key); exists {
		return
	}
	if c.maxSize > 0 && c.fonts.Size() >= c.maxSize {
		c.evictLRU()
	}
	c.fonts.Put(key, font)
}

// evictLRU removes the least recently used font. Callers hold c.mu.
func (c *FontCache) evictLRU() {
	it := c.fonts.Iterator()
	if !it.Next() {
		return
	}
	c.fonts.Remove(it.Key())
	c.evictions.Add(1)
}

// Keys returns the cached keys from least to most recently used.
func (c *FontCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.fonts.Size())
	for _, k := range c.fonts.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// Clear removes all fonts. Statistics are kept.
func (c *FontCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fonts.Clear()
}

// Stats returns cache statistics.
func (c *FontCache) Stats() CacheStats {
	c.mu.Lock()
	size := c.fonts.Size()
	c.mu.Unlock()

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// CacheStats contains cache performance statistics
type CacheStats struct {
	Size      int    // Current number of cached fonts
	MaxSize   int    // Maximum cache size
	Hits      uint64 // Number of cache hits
	Misses    uint64 // Number of cache misses
	Evictions uint64 // Number of evictions
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) * 100 / float64(total)
}

// SetDefaultCacheSize replaces the default cache with an empty one
// holding at most maxSize fonts.
func SetDefaultCacheSize(maxSize int) {
	defaultCacheMu.Lock()
	defer defaultCacheMu.Unlock()
	defaultCache = NewFontCache(maxSize)
}

// ClearDefaultCache clears the default font cache.
func ClearDefaultCache() {
	currentDefaultCache().Clear()
}

// DefaultCacheStats returns statistics for the default cache.
func DefaultCacheStats() CacheStats {
	return currentDefaultCache().Stats()
}
