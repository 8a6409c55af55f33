package store

import (
	"sort"
	"sync"

	"github.com/calvinwijaya/blackjack-table/internal/table"
)

// MemoryStore is an in-memory implementation of table storage
type MemoryStore struct {
	tables map[string]*table.Table
	mu     sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string]*table.Table),
	}
}

// SaveTable saves a table to the store
func (s *MemoryStore) SaveTable(t *table.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[t.ID] = t
	return nil
}

// GetTable retrieves a table by ID
func (s *MemoryStore) GetTable(id string) (*table.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.tables[id]
	if !exists {
		return nil, ErrTableNotFound
	}
	return t, nil
}

// DeleteTable removes a table from the store
func (s *MemoryStore) DeleteTable(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tables[id]; !exists {
		return ErrTableNotFound
	}
	delete(s.tables, id)
	return nil
}

// GetAllTables returns all tables in the store
func (s *MemoryStore) GetAllTables() ([]*table.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tables := make([]*table.Table, 0, len(s.tables))
	for _, t := range s.tables {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].CreatedAt.Before(tables[j].CreatedAt)
	})
	return tables, nil
}
