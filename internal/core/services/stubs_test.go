package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/legalease-labs/legalease/internal/adapters/driven/embedding"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
)

// keywordEmbedder is a deterministic embedding double. Each dimension
// counts occurrences of one keyword, and the vector is normalised, so
// texts sharing words score high against each other.
type keywordEmbedder struct {
	keywords []string
	failWith error
}

func newKeywordEmbedder(keywords ...string) *keywordEmbedder {
	return &keywordEmbedder{keywords: keywords}
}

func (e *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.failWith != nil {
		return nil, e.failWith
	}
	lower := strings.ToLower(text)
	vector := make([]float32, len(e.keywords)+1)
	for i, kw := range e.keywords {
		vector[i] = float32(strings.Count(lower, kw))
	}
	// Constant tail component so no text embeds to the zero vector.
	vector[len(e.keywords)] = 0.1
	return embedding.Normalise(vector), nil
}

func (e *keywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (e *keywordEmbedder) Dimensions() int { return len(e.keywords) + 1 }

func (e *keywordEmbedder) ModelName() string { return "keyword-test" }

func (e *keywordEmbedder) Ping(context.Context) error { return nil }

func (e *keywordEmbedder) Close() error { return nil }

var _ driven.EmbeddingService = (*keywordEmbedder)(nil)

// stubGenerator records prompts and returns a canned answer.
type stubGenerator struct {
	mu       sync.Mutex
	prompts  []string
	systems  []string
	answer   string
	failWith error
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.systems = append(g.systems, opts.SystemPrompt)
	g.mu.Unlock()
	if g.failWith != nil {
		return "", g.failWith
	}
	return g.answer, nil
}

func (g *stubGenerator) ModelName() string { return "stub-model" }

func (g *stubGenerator) Close() error { return nil }

var _ driven.TextGenerator = (*stubGenerator)(nil)

// stubPrompts serves fixed templates.
type stubPrompts struct {
	prompts map[string]string
}

func newStubPrompts() *stubPrompts {
	return &stubPrompts{prompts: map[string]string{
		driven.PromptQASystem: "You are a precise legal assistant.",
		driven.PromptQAUser:   "Contract excerpts:\n%s\n\nQuestion: %s",
	}}
}

func (s *stubPrompts) Load(name string) (string, error) {
	prompt, ok := s.prompts[name]
	if !ok {
		return "", errors.New("unknown prompt " + name)
	}
	return prompt, nil
}

func (s *stubPrompts) Reload() {}

var _ driven.PromptStore = (*stubPrompts)(nil)
