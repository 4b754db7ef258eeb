package service

import (
	"github.com/cespare/xxhash/v2"
	"github.com/maypok86/otter"

	"github.com/ludo-technologies/jsplit/domain"
)

// DefaultCacheCapacity is the number of file results kept in memory
const DefaultCacheCapacity = 4096

type cacheEntry struct {
	hash   uint64
	result *domain.FileResult
}

// ResultCache keeps per-file analysis results keyed by path. An entry is
// served only while the content hash still matches, so a cache is valid
// for a single analysis configuration.
type ResultCache struct {
	entries otter.Cache[string, cacheEntry]
}

// NewResultCache creates a result cache holding up to capacity files
func NewResultCache(capacity int) *ResultCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &ResultCache{
		entries: otter.MustBuilder[string, cacheEntry](capacity).Build(),
	}
}

// Get returns the cached result for path when content is unchanged
func (c *ResultCache) Get(path string, content []byte) (*domain.FileResult, bool) {
	entry, ok := c.entries.Get(path)
	if !ok || entry.hash != xxhash.Sum64(content) {
		return nil, false
	}
	return entry.result, true
}

// Put stores the result computed for content
func (c *ResultCache) Put(path string, content []byte, result *domain.FileResult) {
	c.entries.Set(path, cacheEntry{hash: xxhash.Sum64(content), result: result})
}

// Invalidate drops the entry for path
func (c *ResultCache) Invalidate(path string) {
	c.entries.Delete(path)
}

// Close releases the cache
func (c *ResultCache) Close() {
	c.entries.Close()
}
