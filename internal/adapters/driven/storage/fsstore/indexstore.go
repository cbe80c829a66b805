package fsstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
	"github.com/legalease-labs/legalease/internal/vectorindex/flat"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore stores the vector index of each document as a binary file
// named <document_id>.index under the store directory.
type IndexStore struct {
	dir string
}

// NewIndexStore creates an index store rooted at dir, creating the
// directory if needed.
func NewIndexStore(dir string) (*IndexStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index store directory: %w", err)
	}
	return &IndexStore{dir: dir}, nil
}

// SaveIndex serialises the index to disk, replacing any prior file.
// The index must support serialisation via io.WriterTo.
func (s *IndexStore) SaveIndex(ctx context.Context, documentID string, index driven.VectorIndex) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	wt, ok := index.(io.WriterTo)
	if !ok {
		return fmt.Errorf("%w: index type %T is not serialisable", domain.ErrPersistenceFailed, index)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("%w: serialising index for %s: %v", domain.ErrPersistenceFailed, documentID, err)
	}
	if err := writeAtomic(s.path(documentID), buf.Bytes()); err != nil {
		return fmt.Errorf("%w: writing index for %s: %v", domain.ErrPersistenceFailed, documentID, err)
	}
	return nil
}

// LoadIndex reads a previously saved index.
func (s *IndexStore) LoadIndex(ctx context.Context, documentID string) (driven.VectorIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(documentID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("opening index for %s: %w", documentID, err)
	}
	defer f.Close()

	index, err := flat.Read(f)
	if err != nil {
		return nil, fmt.Errorf("decoding index for %s: %w", documentID, err)
	}
	return index, nil
}

func (s *IndexStore) path(documentID string) string {
	return filepath.Join(s.dir, documentID+".index")
}
