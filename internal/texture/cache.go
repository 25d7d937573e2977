package texture

import (
	"image"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Resolver resolves a texture name to a decoded NRGBA image, or nil.
type Resolver interface {
	Resolve(texName string) *image.NRGBA
}

// Cache is a concurrency-safe texture cache. Failed loads are cached too,
// so a broken file is read and logged once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
	log   logrus.FieldLogger
}

// NewCache creates a texture cache backed by index. A nil log discards.
func NewCache(index *Index, log logrus.FieldLogger) *Cache {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
		log:   log,
	}
}

// Resolve loads and caches a texture by name. Returns nil if not found.
func (c *Cache) Resolve(texName string) *image.NRGBA {
	if c == nil || c.index == nil {
		return nil
	}
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil
	}

	c.mu.RLock()
	img, exists := c.items[path]
	c.mu.RUnlock()
	if exists {
		return img
	}

	img, err := LoadTexture(path)
	if err != nil {
		c.log.WithError(err).WithField("texture", texName).Warn("texture unusable, using flat color")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, exists := c.items[path]; exists {
		return prev
	}
	c.items[path] = img
	return img
}
