package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file extension outside the
	// supported set (pdf, txt, docx). Surfaced at upload time, before
	// any processing begins.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailed indicates the source file could not be read
	// by its parser (corrupt or encrypted).
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmptyContent indicates no usable text remained after chunking.
	// A document with no content is unusable for retrieval.
	ErrEmptyContent = errors.New("no extractable content")

	// ErrEmbeddingFailed indicates the embedding service could not
	// produce vectors.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrIndexBuildFailed indicates the vector index could not be built.
	ErrIndexBuildFailed = errors.New("index build failed")

	// ErrPersistenceFailed indicates the chunk or index store was
	// unwritable.
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrNotIndexed indicates a document has no stored index or chunks.
	// Retrieval callers may treat this as "not yet processed" and map it
	// to an empty result; it is distinct from a READY document that has
	// no relevant content for a query.
	ErrNotIndexed = errors.New("document not indexed")

	// ErrNotReady indicates an operation requires a READY document.
	ErrNotReady = errors.New("document not ready")

	// ErrLLMUnavailable indicates the text generation service is not
	// configured. Question answering is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and retrieval are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
