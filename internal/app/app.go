// Package app wires the adapters and core services together from the
// application configuration. It is the only package that knows every
// concrete implementation.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/legalease-labs/legalease/internal/adapters/driven/config/file"
	embeddingollama "github.com/legalease-labs/legalease/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/legalease-labs/legalease/internal/adapters/driven/embedding/openai"
	"github.com/legalease-labs/legalease/internal/adapters/driven/llm/openrouter"
	"github.com/legalease-labs/legalease/internal/adapters/driven/storage/fsstore"
	"github.com/legalease-labs/legalease/internal/adapters/driven/storage/sqlite"
	"github.com/legalease-labs/legalease/internal/chunker"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
	"github.com/legalease-labs/legalease/internal/core/services"
	"github.com/legalease-labs/legalease/internal/extractors"
	"github.com/legalease-labs/legalease/internal/extractors/docx"
	"github.com/legalease-labs/legalease/internal/extractors/pdf"
	"github.com/legalease-labs/legalease/internal/extractors/plaintext"
	"github.com/legalease-labs/legalease/internal/logger"
	"github.com/legalease-labs/legalease/internal/vectorindex/flat"
)

// App holds the wired services and the resources they own.
type App struct {
	Ingestion *services.Pipeline
	Retrieval *services.Retriever

	// QA is nil when no LLM provider is configured.
	QA *services.QA

	store     *sqlite.Store
	embedder  driven.EmbeddingService
	generator driven.TextGenerator
}

// New builds the application from configuration.
func New(cfg *file.Config) (*App, error) {
	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening metadata store: %w", err)
	}

	chunkStore, err := fsstore.NewChunkStore(filepath.Join(cfg.Storage.DataDir, "chunks"))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("opening chunk store: %w", err)
	}
	indexStore, err := fsstore.NewIndexStore(filepath.Join(cfg.Storage.DataDir, "indexes"))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("opening index store: %w", err)
	}

	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := embedder.Ping(context.Background()); err != nil {
		logger.Warn("Embedding service unreachable: %v", err)
	}

	registry := extractors.NewRegistry(plaintext.New(), pdf.New(), docx.New())
	if err := pdf.CheckAvailable(); err != nil {
		logger.Info("PDF support degraded: %v", err)
	}

	pipeline := services.NewPipeline(
		store.DocumentRegistry(),
		registry,
		chunker.New(chunker.Config{
			ChunkSize:    cfg.Chunking.ChunkSize,
			ChunkOverlap: cfg.Chunking.ChunkOverlap,
		}),
		embedder,
		flat.NewBuilder(),
		chunkStore,
		indexStore,
		services.NewDispatcher(),
		cfg.Storage.UploadDir,
	)

	retriever := services.NewRetriever(embedder, chunkStore, indexStore)

	a := &App{
		Ingestion: pipeline,
		Retrieval: retriever,
		store:     store,
		embedder:  embedder,
	}

	if cfg.LLM.Provider != "" {
		generator, err := buildGenerator(cfg.LLM)
		if err != nil {
			store.Close()
			return nil, err
		}
		prompts, err := file.NewPromptStore("")
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("opening prompt store: %w", err)
		}
		a.generator = generator
		a.QA = services.NewQA(
			store.DocumentRegistry(),
			retriever,
			generator,
			prompts,
			store.ChatStore(),
			services.QAConfig{
				TopK:      cfg.Retrieval.TopK,
				FetchK:    cfg.Retrieval.FetchK,
				MaxTokens: cfg.LLM.MaxTokens,
			},
		)
	}

	return a, nil
}

// Close waits for in-flight ingestion runs and releases resources.
func (a *App) Close() error {
	a.Ingestion.Wait()
	if a.generator != nil {
		a.generator.Close()
	}
	a.embedder.Close()
	return a.store.Close()
}

// buildEmbedder constructs the configured embedding service.
func buildEmbedder(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "ollama", "":
		return embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil
	case "openai":
		service, err := embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openai embeddings: %w", err)
		}
		return service, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// buildGenerator constructs the configured text generator.
func buildGenerator(cfg file.LLMConfig) (driven.TextGenerator, error) {
	switch cfg.Provider {
	case "openrouter":
		generator, err := openrouter.New(openrouter.Config{
			APIKey:            cfg.APIKey,
			BaseURL:           cfg.BaseURL,
			Model:             cfg.Model,
			RequestsPerMinute: cfg.RequestsPerMinute,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openrouter: %w", err)
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
