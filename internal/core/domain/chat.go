package domain

import "time"

// ChatRecord is one question/answer exchange against a document.
// Records are append-only: written once when an answer is produced,
// never mutated or deleted by this core.
type ChatRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// UserID references the asking user.
	UserID string

	// DocumentID references the document the question was asked against.
	DocumentID string

	// Question is the user's question verbatim.
	Question string

	// Answer is the generated answer.
	Answer string

	// Contexts are the retrieved chunk texts the answer was based on,
	// in descending relevance order.
	Contexts []string

	// CreatedAt is when the record was written.
	CreatedAt time.Time
}
