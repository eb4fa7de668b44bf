package ledger

import (
	"context"
	"sync"

	"chorewheel/app/models"
)

// MemoryStore is an in-process Store. It backs tests and the "memory"
// backend for running without external storage; contents are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]models.LedgerEntry
}

// NewMemoryStore creates an empty in-memory ledger.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]models.LedgerEntry)}
}

func (s *MemoryStore) Put(_ context.Context, entry *models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = *entry
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *MemoryStore) All(_ context.Context) ([]models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LedgerEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	return out, nil
}

func (s *MemoryStore) ByPeriod(_ context.Context, periodKey string) ([]models.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.LedgerEntry
	for _, entry := range s.entries {
		if entry.PeriodKey == periodKey {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}
