package storage

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryBackend keeps values in process memory. Entries never expire.
type MemoryBackend struct {
	cache *cache.Cache
}

var _ Backend = (*MemoryBackend)(nil)

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	if x, found := m.cache.Get(key); found {
		stored := x.([]byte)
		out := make([]byte, len(stored))
		copy(out, stored)
		return out, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.cache.Set(key, stored, cache.NoExpiration)
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}
