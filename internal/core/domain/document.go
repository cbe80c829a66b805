package domain

import "time"

// Status is the lifecycle state of an uploaded document.
// A document is PROCESSING from the moment its record is created,
// and ends in exactly one of READY or FAILED.
type Status string

const (
	// StatusProcessing means ingestion has been scheduled or is running.
	StatusProcessing Status = "PROCESSING"

	// StatusReady means chunks and index are persisted and retrievable.
	StatusReady Status = "READY"

	// StatusFailed means ingestion stopped with an error.
	StatusFailed Status = "FAILED"
)

// Valid reports whether s is one of the closed set of statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusReady, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether s is an end state.
func (s Status) Terminal() bool {
	return s == StatusReady || s == StatusFailed
}

// NormaliseStatus maps legacy status strings from older data
// ("uploaded", "processed", lowercase variants) onto the closed enum.
// Unknown values map to FAILED so they surface instead of being
// silently treated as pending.
func NormaliseStatus(raw string) Status {
	switch raw {
	case "uploaded", "processing", string(StatusProcessing):
		return StatusProcessing
	case "processed", "ready", string(StatusReady):
		return StatusReady
	case "failed", "error", string(StatusFailed):
		return StatusFailed
	}
	return StatusFailed
}

// Document represents an uploaded legal document and its processing state.
// Records are created at upload time and mutated only by the ingestion
// pipeline (status transitions); this core never deletes them.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original uploaded file name.
	Filename string

	// OwnerID references the uploading user.
	OwnerID string

	// Status is the current lifecycle state.
	Status Status

	// ChunksCount is the number of stored chunks. Set on READY.
	ChunksCount int

	// Error is a short human-readable failure reason. Set on FAILED.
	Error string

	// FilePath is where the uploaded file is stored on disk.
	FilePath string

	// CreatedAt is when the record was created.
	CreatedAt time.Time

	// UpdatedAt is when the record last changed.
	UpdatedAt time.Time
}

// Chunk is one text segment of a document. Chunks form an ordered
// sequence; Position is the ordinal within the document and must match
// the row order of vectors in the document's index.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int
}

// ScoredChunk is a retrieval result: a chunk's text together with its
// similarity to the query.
type ScoredChunk struct {
	// Content is the chunk text.
	Content string

	// Score is the inner-product similarity to the query (equivalent to
	// cosine similarity, since all vectors are L2-normalised).
	Score float32

	// Position is the chunk's ordinal within the document.
	Position int
}
