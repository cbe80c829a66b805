package driven

// Chunker splits extracted text into an ordered sequence of overlapping
// segments sized for the embedding model's input limit.
//
// Chunking must be deterministic: identical text with identical
// configuration always produces an identical sequence. Empty or
// whitespace-only input yields an empty sequence, not an error.
type Chunker interface {
	// Split returns the chunk texts in document order.
	Split(text string) []string
}
