// Package memory is the in-process fallback cache, used when no Redis
// address is configured. Entries expire lazily on read.
package memory

import (
	"context"
	"encoding"
	"sync"
	"time"

	"jobsift/internal/cache"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
}

func New(opts cache.Options) *Cache {
	ttl := opts.DefaultTTL
	if ttl == 0 {
		ttl = cache.DefaultOptions().DefaultTTL
	}
	return &Cache{
		entries:    make(map[string]entry),
		defaultTTL: ttl,
	}
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case encoding.BinaryMarshaler:
		var err error
		data, err = v.MarshalBinary()
		if err != nil {
			return err
		}
	default:
		return cache.ErrInvalidValue
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string, value interface{}) error {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return cache.ErrNotFound
	}

	switch v := value.(type) {
	case *string:
		*v = string(e.data)
	case encoding.BinaryUnmarshaler:
		return v.UnmarshalBinary(e.data)
	default:
		return cache.ErrInvalidValue
	}

	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	return nil
}
