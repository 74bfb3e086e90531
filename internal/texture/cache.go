package texture

import (
	"image"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Resolver resolves a texture name to a decoded image, or nil.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// DefaultCacheSize bounds how many decoded textures stay in memory.
const DefaultCacheSize = 256

// Cache is a concurrency-safe LRU of decoded textures backed by an Index.
// Failed loads are cached as nil so a broken file is read once.
type Cache struct {
	index *Index
	items *lru.Cache[string, *image.NRGBA]
}

// NewCache creates a texture cache holding at most size textures.
func NewCache(index *Index, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	items, err := lru.New[string, *image.NRGBA](size)
	if err != nil {
		return nil, err
	}
	return &Cache{index: index, items: items}, nil
}

// Resolve loads and caches a texture by name. Returns nil if not found.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}
	if img, ok := c.items.Get(path); ok {
		return img
	}

	img, err := Load(path)
	if err != nil {
		slog.Warn("texture load failed", "path", path, "error", err)
	}
	c.items.Add(path, img)
	return img
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.items.Len()
}
