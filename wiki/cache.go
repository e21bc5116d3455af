package wiki

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/mapreel/mapreel/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// entry is a cached value and the time it was stored.
type entry[T any] struct {
	Value T         `json:"value"`
	At    time.Time `json:"at"`
}

type cacheData[K comparable, T any] struct {
	Entries map[K]entry[T] `json:"entries"`
}

// cacher is a keyed view over a single gache file. Every entry expires on its own.
type cacher[K comparable, T any] struct {
	internal *gache.Cache[*cacheData[K, T]]
	lifetime time.Duration
	now      func() time.Time
	mu       sync.RWMutex
}

func newCacher[K comparable, T any](dir, name string, lifetime time.Duration) *cacher[K, T] {
	return &cacher[K, T]{
		// the file never expires as a whole, entries carry their own age
		internal: gache.New[*cacheData[K, T]](&gache.Options{
			Path:       filepath.Join(dir, name),
			FileSystem: &filesystem.GacheFs{},
		}),
		lifetime: lifetime,
		now:      time.Now,
	}
}

func (c *cacher[K, T]) fresh(e entry[T]) bool {
	return c.now().Sub(e.At) <= c.lifetime
}

func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, _, err := c.internal.Get()
	if err != nil || data == nil {
		return mo.None[T]()
	}

	if e, ok := data.Entries[key]; ok && c.fresh(e) {
		return mo.Some(e.Value)
	}

	return mo.None[T]()
}

// Set stores t under key and drops the entries that have expired.
func (c *cacher[K, T]) Set(key K, t T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, _, err := c.internal.Get()
	if err != nil || data == nil || data.Entries == nil {
		data = &cacheData[K, T]{Entries: make(map[K]entry[T])}
	}

	for k, e := range data.Entries {
		if !c.fresh(e) {
			delete(data.Entries, k)
		}
	}

	data.Entries[key] = entry[T]{Value: t, At: c.now()}
	return c.internal.Set(data)
}

func (c *cacher[K, T]) Delete(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, _, err := c.internal.Get()
	if err != nil || data == nil {
		return err
	}

	delete(data.Entries, key)
	return c.internal.Set(data)
}

// caches groups the response caches of a client.
type caches struct {
	articles *cacher[string, *Article]
	images   *cacher[string, []string]
	infos    *cacher[string, *Image]
	failures *cacher[string, bool]
}

func newCaches(dir string) *caches {
	return &caches{
		articles: newCacher[string, *Article](dir, "extracts.json", time.Hour*24*2),
		images:   newCacher[string, []string](dir, "images.json", time.Hour*24*2),
		infos:    newCacher[string, *Image](dir, "imageinfo.json", time.Hour*24*10),
		failures: newCacher[string, bool](dir, "failures.json", time.Minute),
	}
}
