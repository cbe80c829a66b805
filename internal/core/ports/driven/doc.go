// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor / ExtractorRegistry: Convert uploaded files to plain text
//   - Chunker: Split extracted text into overlapping segments
//   - EmbeddingService: Map chunk text to normalised vectors
//   - IndexBuilder / VectorIndex: Build and search per-document indexes
//   - ChunkStore / IndexStore: Per-document blob persistence
//   - DocumentRegistry: Document metadata and lifecycle status
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TextGenerator: Language model for question answering. Without it,
//     ingestion and retrieval still work; only the ask flow is disabled.
//   - ChatStore: Question/answer history. Without it, answers are not
//     recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or storage package
package driven
