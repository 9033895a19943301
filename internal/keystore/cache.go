package keystore

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// TTL Cache
// =============================================================================

// cachedStore wraps a Store with a small in-memory cache of Get results.
// Writes invalidate the cached entry so rotation takes effect within one
// request, not one TTL.
type cachedStore struct {
	inner Store
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	key       *SigningKey
	expiresAt time.Time
}

// WithCache wraps store with a TTL cache. A non-positive ttl returns the
// store unwrapped.
func WithCache(store Store, ttl time.Duration) Store {
	if ttl <= 0 {
		return store
	}
	return &cachedStore{
		inner:   store,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *cachedStore) Get(ctx context.Context, name string) (*SigningKey, error) {
	c.mu.Lock()
	entry, ok := c.entries[name]
	c.mu.Unlock()

	if ok && time.Now().Before(entry.expiresAt) {
		return entry.key, nil
	}

	key, err := c.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[name] = cacheEntry{key: key, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return key, nil
}

func (c *cachedStore) Put(ctx context.Context, key *SigningKey) error {
	if err := c.inner.Put(ctx, key); err != nil {
		return err
	}
	c.invalidate(key.Name)
	return nil
}

func (c *cachedStore) Delete(ctx context.Context, name string) error {
	if err := c.inner.Delete(ctx, name); err != nil {
		return err
	}
	c.invalidate(name)
	return nil
}

// List bypasses the cache: it is an operator path, not a signing path.
func (c *cachedStore) List(ctx context.Context) ([]*SigningKey, error) {
	return c.inner.List(ctx)
}

func (c *cachedStore) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

func (c *cachedStore) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
	return c.inner.Close()
}

func (c *cachedStore) invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
}
