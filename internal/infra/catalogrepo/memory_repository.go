package catalogrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/anyidea/anyidea-api/internal/domain/catalog"
)

// MemoryRepository is an in-memory catalog.Repository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []catalog.CategoryRecord
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert implements catalog.Repository.
func (r *MemoryRepository) Insert(_ context.Context, rec catalog.CategoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

// FindActive implements catalog.Repository.
func (r *MemoryRepository) FindActive(_ context.Context, sessionID, categoryID string) (catalog.CategoryRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.SessionID == sessionID && rec.CategoryID == categoryID && rec.Active {
			return rec, true, nil
		}
	}
	return catalog.CategoryRecord{}, false, nil
}

// ListActive implements catalog.Repository.
func (r *MemoryRepository) ListActive(_ context.Context, sessionID string) ([]catalog.CategoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []catalog.CategoryRecord
	for _, rec := range r.records {
		if rec.SessionID == sessionID && rec.Active {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Deactivate implements catalog.Repository.
func (r *MemoryRepository) Deactivate(_ context.Context, sessionID, categoryID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.SessionID == sessionID && rec.CategoryID == categoryID && rec.Active {
			r.records[i].Active = false
			return true, nil
		}
	}
	return false, nil
}

var _ catalog.Repository = (*MemoryRepository)(nil)
