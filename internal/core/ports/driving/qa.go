package driving

import (
	"context"

	"github.com/legalease-labs/legalease/internal/core/domain"
)

// QAService answers natural-language questions against a READY document
// using retrieved passages and a text generation service.
type QAService interface {
	// Ask verifies the document is READY, retrieves the most relevant
	// chunks, generates an answer grounded in them, and appends a chat
	// record. topK <= 0 uses the configured default.
	//
	// Returns domain.ErrNotReady when the document is still processing
	// or failed, and domain.ErrNotFound when it does not exist.
	Ask(ctx context.Context, userID, documentID, question string, topK int) (*Answer, error)

	// History returns past exchanges for a document, oldest first.
	History(ctx context.Context, documentID string) ([]domain.ChatRecord, error)
}

// Answer is the result of a question.
type Answer struct {
	// Text is the generated answer.
	Text string

	// Contexts are the chunk texts the answer was grounded in,
	// descending relevance.
	Contexts []string

	// Scores are the similarity scores parallel to Contexts.
	Scores []float32
}
