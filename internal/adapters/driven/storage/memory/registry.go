// Package memory provides in-memory store implementations.
// Used in tests and as a reference for the persistence contracts.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
)

// Ensure DocumentRegistry implements the interface.
var _ driven.DocumentRegistry = (*DocumentRegistry)(nil)

// DocumentRegistry is an in-memory implementation of
// driven.DocumentRegistry. All reads return copies, so callers always
// see a consistent snapshot even while the pipeline is mutating status.
type DocumentRegistry struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
}

// NewDocumentRegistry creates a new in-memory document registry.
func NewDocumentRegistry() *DocumentRegistry {
	return &DocumentRegistry{documents: make(map[string]domain.Document)}
}

// Create stores a new document record.
func (r *DocumentRegistry) Create(_ context.Context, doc *domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *doc
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.documents[stored.ID] = stored
	return nil
}

// Get retrieves a document by ID.
func (r *DocumentRegistry) Get(_ context.Context, id string) (*domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// SetStatus transitions a document's lifecycle status.
func (r *DocumentRegistry) SetStatus(_ context.Context, id string, status domain.Status, fields driven.StatusFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.documents[id]
	if !ok {
		return domain.ErrNotFound
	}

	doc.Status = status
	doc.ChunksCount = fields.ChunksCount
	doc.Error = fields.Error
	doc.UpdatedAt = time.Now().UTC()
	r.documents[id] = doc
	return nil
}

// SetFilePath records where the uploaded file was stored.
func (r *DocumentRegistry) SetFilePath(_ context.Context, id, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.FilePath = path
	doc.UpdatedAt = time.Now().UTC()
	r.documents[id] = doc
	return nil
}

// ListByOwner returns all documents belonging to a user.
func (r *DocumentRegistry) ListByOwner(_ context.Context, ownerID string) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Document
	for id := range r.documents {
		if r.documents[id].OwnerID == ownerID {
			result = append(result, r.documents[id])
		}
	}
	return result, nil
}
