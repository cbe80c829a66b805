package driving

import (
	"context"

	"github.com/legalease-labs/legalease/internal/core/domain"
)

// RetrievalService answers semantic queries against one document's index.
type RetrievalService interface {
	// Retrieve embeds the query and returns the top-k most relevant
	// chunks with scores, descending. fetchK (>= k) is the number of
	// candidates searched before truncation to k; it exists to allow
	// re-ranking layers on top.
	//
	// Returns domain.ErrNotIndexed when the document has no stored
	// index or chunks, so callers can distinguish "not processed yet"
	// from "no relevant content". k <= 0 yields an empty result.
	Retrieve(ctx context.Context, documentID, query string, k, fetchK int) ([]domain.ScoredChunk, error)
}
