package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
	"github.com/legalease-labs/legalease/internal/core/ports/driving"
	"github.com/legalease-labs/legalease/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driving.RetrievalService = (*Retriever)(nil)

// Retriever answers semantic queries against one document's stored
// index and chunk list. Chunk position i pairs with index row i; hits
// whose row falls outside the chunk list are dropped rather than
// surfaced as an error.
type Retriever struct {
	embedder   driven.EmbeddingService
	chunkStore driven.ChunkStore
	indexStore driven.IndexStore
}

// NewRetriever creates a new retrieval service.
func NewRetriever(
	embedder driven.EmbeddingService,
	chunkStore driven.ChunkStore,
	indexStore driven.IndexStore,
) *Retriever {
	return &Retriever{
		embedder:   embedder,
		chunkStore: chunkStore,
		indexStore: indexStore,
	}
}

// Retrieve embeds the query and returns the top-k most relevant chunks
// with scores, descending. fetchK candidates are searched before
// truncation to k.
func (r *Retriever) Retrieve(ctx context.Context, documentID, query string, k, fetchK int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}
	if fetchK < k {
		fetchK = k
	}

	index, err := r.indexStore.LoadIndex(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotIndexed, documentID)
		}
		return nil, fmt.Errorf("loading index: %w", err)
	}

	// An empty index is a valid state for a document with no content;
	// it simply matches nothing.
	if index.Len() == 0 {
		return nil, nil
	}

	queryVector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits := index.Search(queryVector, fetchK)

	chunks, err := r.chunkStore.LoadChunks(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotIndexed, documentID)
		}
		return nil, fmt.Errorf("loading chunks: %w", err)
	}

	results := make([]domain.ScoredChunk, 0, len(hits))
	for _, hit := range hits {
		if hit.Row < 0 || hit.Row >= len(chunks) {
			logger.Debug("Dropping hit with row %d outside chunk list of %d for %s",
				hit.Row, len(chunks), documentID)
			continue
		}
		results = append(results, domain.ScoredChunk{
			Content:  chunks[hit.Row].Content,
			Score:    hit.Score,
			Position: hit.Row,
		})
		if len(results) == k {
			break
		}
	}

	return results, nil
}
