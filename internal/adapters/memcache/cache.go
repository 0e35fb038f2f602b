// Package memcache implements the RecordCache port with an in-memory map.
package memcache

import (
	"sync"

	"go.trai.ch/licheck/internal/core/domain"
)

// Cache is a mutex-guarded in-memory record cache. Its lifetime is the
// process (or the test that constructs it); there is no invalidation.
type Cache struct {
	mu      sync.RWMutex
	records map[string]domain.PackageRecord
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		records: make(map[string]domain.PackageRecord),
	}
}

// Get returns the cached record for a normalized package name.
func (c *Cache) Get(name string) (domain.PackageRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[name]
	return rec, ok
}

// Put stores a record keyed by its normalized name.
func (c *Cache) Put(rec domain.PackageRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[rec.Name] = rec
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
