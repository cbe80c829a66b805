package driven

import (
	"context"

	"github.com/legalease-labs/legalease/internal/core/domain"
)

// DocumentRegistry holds document metadata and lifecycle status.
// The ingestion pipeline reads and writes it but does not own its
// transport; backed by SQLite in production and an in-memory map in tests.
//
// Status reads may happen concurrently with an in-flight ingestion and
// must always return a consistent snapshot: PROCESSING, or a fully
// written READY/FAILED record, never a half-written intermediate.
type DocumentRegistry interface {
	// Create stores a new document record.
	Create(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if no record exists.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// SetStatus transitions a document's lifecycle status and updates
	// its timestamp. READY must carry the chunk count; FAILED must carry
	// a short error string.
	SetStatus(ctx context.Context, id string, status domain.Status, fields StatusFields) error

	// SetFilePath records where the uploaded file was stored.
	SetFilePath(ctx context.Context, id, path string) error

	// ListByOwner returns all documents belonging to a user.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Document, error)
}

// StatusFields carries the optional fields of a status transition.
type StatusFields struct {
	// ChunksCount is set on READY: the number of stored chunks.
	ChunksCount int

	// Error is set on FAILED: a short human-readable reason,
	// never a stack trace.
	Error string
}
