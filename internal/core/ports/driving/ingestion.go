package driving

import (
	"context"

	"github.com/legalease-labs/legalease/internal/core/domain"
)

// IngestionService accepts uploads and drives documents through the
// processing lifecycle.
type IngestionService interface {
	// Upload validates the file's extension, creates the document
	// record with status PROCESSING, stores the file under the upload
	// directory and schedules background ingestion. It returns as soon
	// as processing is scheduled.
	//
	// Returns domain.ErrUnsupportedFormat before any record is created
	// when the extension is not one of pdf, txt, docx.
	Upload(ctx context.Context, srcPath, ownerID string) (*domain.Document, error)

	// Reingest schedules a fresh processing run for an existing
	// document, e.g. after a FAILED run. Runs for the same document
	// never overlap.
	Reingest(ctx context.Context, documentID string) error

	// Status returns the current registry snapshot for a document.
	Status(ctx context.Context, documentID string) (*domain.Document, error)

	// List returns all documents belonging to a user.
	List(ctx context.Context, ownerID string) ([]domain.Document, error)
}
