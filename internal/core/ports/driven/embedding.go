package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Query and chunk embeddings must be produced by the identical model and
// version: the service handle is constructed once at process start and
// injected into both the ingestion pipeline and the retriever, so the
// embedding spaces always match.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a normalised vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, one vector per
	// input in the same order. Internal batching must not change the
	// output: embedding is independent per input. Inputs that exceed the
	// model limit are truncated before encoding rather than failing the
	// batch.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates that the service is reachable without running
	// inference.
	Ping(ctx context.Context) error

	// Close releases any resources held by the service.
	Close() error
}
