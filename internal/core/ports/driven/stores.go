package driven

import (
	"context"

	"github.com/legalease-labs/legalease/internal/core/domain"
)

// ChunkStore persists the ordered chunk list of a document, keyed by
// document ID. Save overwrites any prior value for that ID; chunks are
// immutable once written and only replaced wholesale by re-ingestion.
type ChunkStore interface {
	// SaveChunks durably stores the chunk list for a document.
	SaveChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// LoadChunks returns the stored chunks in position order.
	// Returns domain.ErrNotFound when nothing is stored for the ID;
	// callers treat that as "not yet processed", not as a failure.
	LoadChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)
}

// IndexStore persists the serialised vector index of a document, keyed
// by document ID. Save overwrites any prior value for that ID.
type IndexStore interface {
	// SaveIndex durably stores the index for a document.
	SaveIndex(ctx context.Context, documentID string, index VectorIndex) error

	// LoadIndex returns the stored index.
	// Returns domain.ErrNotFound when nothing is stored for the ID.
	LoadIndex(ctx context.Context, documentID string) (VectorIndex, error)
}
