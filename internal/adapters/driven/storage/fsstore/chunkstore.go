package fsstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore stores the chunk list of each document as a JSON file
// named <document_id>.chunks.json under the store directory.
type ChunkStore struct {
	dir string
}

// NewChunkStore creates a chunk store rooted at dir, creating the
// directory if needed.
func NewChunkStore(dir string) (*ChunkStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating chunk store directory: %w", err)
	}
	return &ChunkStore{dir: dir}, nil
}

type chunkFile struct {
	DocumentID string        `json:"document_id"`
	Chunks     []storedChunk `json:"chunks"`
}

type storedChunk struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// SaveChunks writes the chunk list for a document, replacing any prior
// file.
func (s *ChunkStore) SaveChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file := chunkFile{DocumentID: documentID, Chunks: make([]storedChunk, len(chunks))}
	for i, c := range chunks {
		file.Chunks[i] = storedChunk{ID: c.ID, Content: c.Content, Position: c.Position}
	}

	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding chunks for %s: %w", documentID, err)
	}
	if err := writeAtomic(s.path(documentID), data); err != nil {
		return fmt.Errorf("%w: writing chunks for %s: %v", domain.ErrPersistenceFailed, documentID, err)
	}
	return nil
}

// LoadChunks reads the chunk list back in position order.
func (s *ChunkStore) LoadChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(documentID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading chunks for %s: %w", documentID, err)
	}

	var file chunkFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding chunks for %s: %w", documentID, err)
	}

	chunks := make([]domain.Chunk, len(file.Chunks))
	for i, c := range file.Chunks {
		chunks[i] = domain.Chunk{ID: c.ID, DocumentID: documentID, Content: c.Content, Position: c.Position}
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Position < chunks[j].Position })
	return chunks, nil
}

func (s *ChunkStore) path(documentID string) string {
	return filepath.Join(s.dir, documentID+".chunks.json")
}
