package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps pending flows in process memory. Suitable for a
// single-instance relay; use the Redis store when callbacks can land on
// another instance.
type MemoryStore struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, time.Minute),
	}
}

func (m *MemoryStore) Create(_ context.Context, f Flow) error {
	if f.State == "" {
		return fmt.Errorf("state: missing state value")
	}
	ttl := time.Until(f.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("state: expires_at must be in the future")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Set(f.State, f, ttl)
	return nil
}

func (m *MemoryStore) Consume(_ context.Context, state string) (*Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.cache.Get(state)
	if !ok {
		return nil, ErrNotFound
	}
	m.cache.Delete(state)
	f := v.(Flow)
	return &f, nil
}

func (m *MemoryStore) Delete(_ context.Context, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Delete(state)
	return nil
}
