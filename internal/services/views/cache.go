// Package views memoizes derived views of the current dataset.
package views

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/j-veylop/llm-analytics-tui/internal/models"
)

// Cache holds computed views keyed by load generation, view name and filter.
// A new generation never sees entries from an older one.
type Cache struct {
	cache *ristretto.Cache[string, any]
}

// NewCache creates a cache holding up to maxEntries views.
func NewCache(maxEntries int64) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create views cache: %w", err)
	}
	return &Cache{cache: c}, nil
}

// Key builds the cache key for a view.
func Key(generation uint64, view string, f models.Filter) string {
	return fmt.Sprintf("%d|%s|%s", generation, view, f.Key())
}

// Get returns the cached view or computes and stores it. A nil cache
// always computes. compute must be pure for a given generation and filter.
func Get[T any](c *Cache, generation uint64, view string, f models.Filter, compute func() T) T {
	if c == nil {
		return compute()
	}

	key := Key(generation, view, f)
	if v, ok := c.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed
		}
	}

	v := compute()
	c.cache.Set(key, v, 1)
	return v
}

// Wait blocks until pending writes are visible.
func (c *Cache) Wait() {
	c.cache.Wait()
}

// Clear drops every cached view.
func (c *Cache) Clear() {
	c.cache.Clear()
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	if c == nil || c.cache.Metrics == nil {
		return 0, 0
	}
	return c.cache.Metrics.Hits(), c.cache.Metrics.Misses()
}

// Close releases the cache.
func (c *Cache) Close() {
	c.cache.Close()
}
