// Package domain defines the core business entities for LegalEase.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded legal document and its lifecycle status
//   - Chunk: An ordered text segment of a document
//   - ScoredChunk: A retrieval result with its similarity score
//   - ChatRecord: One question/answer exchange against a document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
