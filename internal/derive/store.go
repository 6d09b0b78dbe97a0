package derive

import (
	"context"
	"sync"
)

// Store persists committed records. Commit must only replace the stored
// record when rec.Generation is greater than the stored generation, and
// reports whether it did.
type Store interface {
	Commit(ctx context.Context, rec Record) (bool, error)
	Load(ctx context.Context, characterID string) (Record, bool, error)
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Commit implements Store.
func (s *MemoryStore) Commit(ctx context.Context, rec Record) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.records[rec.CharacterID]; ok && cur.Generation >= rec.Generation {
		return false, nil
	}
	s.records[rec.CharacterID] = rec
	return true, nil
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, characterID string) (Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[characterID]
	return rec, ok, nil
}
