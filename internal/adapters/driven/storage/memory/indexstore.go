package memory

import (
	"context"
	"sync"

	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
// Indexes are immutable after build, so storing the handle is safe.
type IndexStore struct {
	mu      sync.RWMutex
	indexes map[string]driven.VectorIndex
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{indexes: make(map[string]driven.VectorIndex)}
}

// SaveIndex stores the index for a document, replacing any prior value.
func (s *IndexStore) SaveIndex(_ context.Context, documentID string, index driven.VectorIndex) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexes[documentID] = index
	return nil
}

// LoadIndex returns the stored index.
func (s *IndexStore) LoadIndex(_ context.Context, documentID string) (driven.VectorIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, ok := s.indexes[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return index, nil
}
