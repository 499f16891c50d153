package weathercache

import (
	"context"
	"sync"
	"time"

	"github.com/anyidea/anyidea-api/internal/domain/weather"
)

type entry struct {
	snap      weather.Snapshot
	expiresAt time.Time
}

// MemoryStore is an in-memory snapshot cache used for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryStore constructs a cache backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

// Get implements weather.SnapshotStore.
func (s *MemoryStore) Get(_ context.Context, key string) (weather.Snapshot, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return weather.Snapshot{}, false, nil
	}
	if !e.expiresAt.IsZero() && e.expiresAt.Before(time.Now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return weather.Snapshot{}, false, nil
	}
	return e.snap, true, nil
}

// Save implements weather.SnapshotStore.
func (s *MemoryStore) Save(_ context.Context, key string, snap weather.Snapshot, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry{snap: snap, expiresAt: exp}
	s.mu.Unlock()
	return nil
}

var _ weather.SnapshotStore = (*MemoryStore)(nil)
