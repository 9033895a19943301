package keystore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// countingStore records Get hits against an in-memory map.
type countingStore struct {
	keys map[string]*SigningKey
	gets int
}

func newCountingStore() *countingStore {
	return &countingStore{keys: make(map[string]*SigningKey)}
}

func (s *countingStore) Put(_ context.Context, key *SigningKey) error {
	s.keys[key.Name] = key
	return nil
}

func (s *countingStore) Get(_ context.Context, name string) (*SigningKey, error) {
	s.gets++
	key, ok := s.keys[name]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return key, nil
}

func (s *countingStore) Delete(_ context.Context, name string) error {
	if _, ok := s.keys[name]; !ok {
		return ErrKeyNotFound
	}
	delete(s.keys, name)
	return nil
}

func (s *countingStore) List(_ context.Context) ([]*SigningKey, error) {
	keys := make([]*SigningKey, 0, len(s.keys))
	for _, key := range s.keys {
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *countingStore) Ping(context.Context) error { return nil }
func (s *countingStore) Close() error               { return nil }

func TestWithCacheZeroTTLUnwrapped(t *testing.T) {
	inner := newCountingStore()
	require.Same(t, Store(inner), WithCache(inner, 0))
}

func TestCachedStoreServesFromCache(t *testing.T) {
	inner := newCountingStore()
	cached := WithCache(inner, time.Minute)
	ctx := context.Background()

	require.NoError(t, cached.Put(ctx, testSigningKey("prod")))

	for i := 0; i < 3; i++ {
		got, err := cached.Get(ctx, "prod")
		require.NoError(t, err)
		require.Equal(t, "prod", got.Name)
	}
	require.Equal(t, 1, inner.gets)
}

func TestCachedStoreMissNotCached(t *testing.T) {
	inner := newCountingStore()
	cached := WithCache(inner, time.Minute)
	ctx := context.Background()

	_, err := cached.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrKeyNotFound)
	_, err = cached.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.Equal(t, 2, inner.gets)
}

func TestCachedStorePutInvalidates(t *testing.T) {
	inner := newCountingStore()
	cached := WithCache(inner, time.Minute)
	ctx := context.Background()

	require.NoError(t, cached.Put(ctx, testSigningKey("prod")))
	_, err := cached.Get(ctx, "prod")
	require.NoError(t, err)

	rotated := testSigningKey("prod")
	rotated.AccessKeyID = "AKIAROTATEDROTATED00"
	require.NoError(t, cached.Put(ctx, rotated))

	got, err := cached.Get(ctx, "prod")
	require.NoError(t, err)
	require.Equal(t, "AKIAROTATEDROTATED00", got.AccessKeyID)
}

func TestCachedStoreDeleteInvalidates(t *testing.T) {
	inner := newCountingStore()
	cached := WithCache(inner, time.Minute)
	ctx := context.Background()

	require.NoError(t, cached.Put(ctx, testSigningKey("prod")))
	_, err := cached.Get(ctx, "prod")
	require.NoError(t, err)

	require.NoError(t, cached.Delete(ctx, "prod"))
	_, err = cached.Get(ctx, "prod")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCachedStoreExpiry(t *testing.T) {
	inner := newCountingStore()
	cached := WithCache(inner, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cached.Put(ctx, testSigningKey("prod")))
	_, err := cached.Get(ctx, "prod")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = cached.Get(ctx, "prod")
	require.NoError(t, err)
	require.Equal(t, 2, inner.gets)
}
