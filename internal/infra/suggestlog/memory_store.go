package suggestlog

import (
	"context"
	"sync"

	"github.com/anyidea/anyidea-api/internal/domain/suggest"
)

// MemoryStore keeps suggestion logs in memory for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	records []suggest.LogRecord
}

// NewMemoryStore constructs a store backed by memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveSuggestionLog implements suggest.LogStore.
func (s *MemoryStore) SaveSuggestionLog(_ context.Context, rec suggest.LogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Records returns a copy of everything saved so far.
func (s *MemoryStore) Records() []suggest.LogRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]suggest.LogRecord, len(s.records))
	copy(out, s.records)
	return out
}

var _ suggest.LogStore = (*MemoryStore)(nil)
