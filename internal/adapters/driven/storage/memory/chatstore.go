package memory

import (
	"context"
	"sync"

	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
)

// Ensure ChatStore implements the interface.
var _ driven.ChatStore = (*ChatStore)(nil)

// ChatStore is an in-memory implementation of driven.ChatStore.
type ChatStore struct {
	mu      sync.RWMutex
	records []domain.ChatRecord
}

// NewChatStore creates a new in-memory chat store.
func NewChatStore() *ChatStore {
	return &ChatStore{}
}

// Append stores a chat record.
func (s *ChatStore) Append(_ context.Context, record *domain.ChatRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *record)
	return nil
}

// ListByDocument returns records for a document, oldest first.
func (s *ChatStore) ListByDocument(_ context.Context, documentID string) ([]domain.ChatRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.ChatRecord
	for i := range s.records {
		if s.records[i].DocumentID == documentID {
			result = append(result, s.records[i])
		}
	}
	return result, nil
}
