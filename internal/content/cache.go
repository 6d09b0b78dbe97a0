package content

import (
	"context"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/lawnchairsociety/heroforge/internal/class"
)

// DefaultCacheSize bounds the shared class cache when no size is configured.
const DefaultCacheSize = 512

// Cache is a bounded, shared Repository in front of a slower source.
// Concurrent misses for the same id collapse into a single lookup. Purge
// drops every entry and must be called when the source's content changes.
type Cache struct {
	src   Repository
	cache *lru.Cache[class.ID, *class.Definition]
	group singleflight.Group

	// epoch is bumped by Purge so results of lookups started before a purge
	// are returned but not cached.
	epoch atomic.Uint64
}

// NewCache wraps src with an LRU cache holding up to size definitions.
func NewCache(src Repository, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[class.ID, *class.Definition](size)
	if err != nil {
		return nil, err
	}
	return &Cache{src: src, cache: c}, nil
}

// Class implements Repository.
func (c *Cache) Class(ctx context.Context, id class.ID) (*class.Definition, error) {
	if def, ok := c.cache.Get(id); ok {
		return def, nil
	}

	epoch := c.epoch.Load()
	v, err, _ := c.group.Do(string(id), func() (any, error) {
		def, err := c.src.Class(ctx, id)
		if err != nil {
			return nil, err
		}
		if c.epoch.Load() == epoch {
			c.cache.Add(id, def)
		}
		return def, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*class.Definition), nil
}

// Purge drops every cached definition.
func (c *Cache) Purge() {
	c.epoch.Add(1)
	c.cache.Purge()
}

// Len returns the number of cached definitions
func (c *Cache) Len() int {
	return c.cache.Len()
}
