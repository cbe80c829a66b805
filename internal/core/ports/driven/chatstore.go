package driven

import (
	"context"

	"github.com/legalease-labs/legalease/internal/core/domain"
)

// ChatStore persists question/answer history. Append-only: records are
// written once per answered question and never mutated.
type ChatStore interface {
	// Append stores a chat record.
	Append(ctx context.Context, record *domain.ChatRecord) error

	// ListByDocument returns records for a document, oldest first.
	ListByDocument(ctx context.Context, documentID string) ([]domain.ChatRecord, error)
}
