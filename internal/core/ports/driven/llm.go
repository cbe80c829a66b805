package driven

import "context"

// TextGenerator produces text completions from a prompt. The question
// answering flow treats it as an opaque generation service; prompt
// composition and retrieval happen in core.
//
// This is an optional service - when nil, the ask flow is disabled but
// ingestion and retrieval are unaffected.
//
// Implementations may include:
//   - OpenRouter (OpenAI-compatible chat completions)
//   - OpenAI
//   - Ollama (local models)
type TextGenerator interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// SystemPrompt is prepended as the system message when non-empty.
	SystemPrompt string
}
