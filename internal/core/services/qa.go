package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
	"github.com/legalease-labs/legalease/internal/core/ports/driving"
	"github.com/legalease-labs/legalease/internal/logger"
)

// Ensure QA implements the interface.
var _ driving.QAService = (*QA)(nil)

// QA configuration defaults, matching the retrieval defaults.
const (
	DefaultAnswerTopK   = 3
	DefaultAnswerFetchK = 20
	DefaultMaxTokens    = 300
)

// QAConfig tunes the question answering flow.
type QAConfig struct {
	// TopK is the number of excerpts given to the model (default 3).
	TopK int

	// FetchK is the candidate pool searched before truncation (default 20).
	FetchK int

	// MaxTokens caps answer length (default 300).
	MaxTokens int
}

// withDefaults fills zero fields.
func (c QAConfig) withDefaults() QAConfig {
	if c.TopK <= 0 {
		c.TopK = DefaultAnswerTopK
	}
	if c.FetchK <= 0 {
		c.FetchK = DefaultAnswerFetchK
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	return c
}

// QA answers questions about a READY document. Answers are grounded in
// the retrieved excerpts only; generation runs at temperature zero so
// repeated questions give stable answers.
type QA struct {
	registry  driven.DocumentRegistry
	retrieval driving.RetrievalService
	generator driven.TextGenerator
	prompts   driven.PromptStore
	chats     driven.ChatStore
	cfg       QAConfig
}

// NewQA creates a new question answering service. generator may be nil,
// in which case Ask returns domain.ErrLLMUnavailable.
func NewQA(
	registry driven.DocumentRegistry,
	retrieval driving.RetrievalService,
	generator driven.TextGenerator,
	prompts driven.PromptStore,
	chats driven.ChatStore,
	cfg QAConfig,
) *QA {
	return &QA{
		registry:  registry,
		retrieval: retrieval,
		generator: generator,
		prompts:   prompts,
		chats:     chats,
		cfg:       cfg.withDefaults(),
	}
}

// Ask verifies the document is READY, retrieves the most relevant
// excerpts, generates an answer grounded in them and appends a chat
// record.
func (q *QA) Ask(ctx context.Context, userID, documentID, question string, topK int) (*driving.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if q.generator == nil {
		return nil, fmt.Errorf("%w: no text generation service configured", domain.ErrLLMUnavailable)
	}

	doc, err := q.registry.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.StatusReady {
		return nil, fmt.Errorf("%w: document %s is %s", domain.ErrNotReady, documentID, doc.Status)
	}

	if topK <= 0 {
		topK = q.cfg.TopK
	}
	fetchK := q.cfg.FetchK
	if fetchK < topK {
		fetchK = topK
	}

	scored, err := q.retrieval.Retrieve(ctx, documentID, question, topK, fetchK)
	if err != nil {
		return nil, fmt.Errorf("retrieving excerpts: %w", err)
	}

	contexts := make([]string, len(scored))
	scores := make([]float32, len(scored))
	blocks := make([]string, len(scored))
	for i, chunk := range scored {
		contexts[i] = chunk.Content
		scores[i] = chunk.Score
		blocks[i] = fmt.Sprintf("Context %d (relevance: %.2f):\n%s", i+1, chunk.Score, chunk.Content)
	}
	contextText := strings.Join(blocks, "\n\n")

	systemPrompt, err := q.prompts.Load(driven.PromptQASystem)
	if err != nil {
		return nil, fmt.Errorf("loading system prompt: %w", err)
	}
	userTemplate, err := q.prompts.Load(driven.PromptQAUser)
	if err != nil {
		return nil, fmt.Errorf("loading user prompt: %w", err)
	}
	prompt := fmt.Sprintf(userTemplate, contextText, question)

	logger.Debug("Asking %s about document %s with %d excerpts", q.generator.ModelName(), documentID, len(contexts))
	text, err := q.generator.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:    q.cfg.MaxTokens,
		Temperature:  0,
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}
	text = strings.TrimSpace(text)

	record := &domain.ChatRecord{
		ID:         uuid.NewString(),
		UserID:     userID,
		DocumentID: documentID,
		Question:   question,
		Answer:     text,
		Contexts:   contexts,
	}
	if err := q.chats.Append(ctx, record); err != nil {
		// The answer is still useful even if history cannot be saved.
		logger.Error("Cannot save chat record for %s: %v", documentID, err)
	}

	return &driving.Answer{
		Text:     text,
		Contexts: contexts,
		Scores:   scores,
	}, nil
}

// History returns past exchanges for a document, oldest first.
func (q *QA) History(ctx context.Context, documentID string) ([]domain.ChatRecord, error) {
	return q.chats.ListByDocument(ctx, documentID)
}
