package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
	"github.com/legalease-labs/legalease/internal/core/ports/driving"
	"github.com/legalease-labs/legalease/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.IngestionService = (*Pipeline)(nil)

// DefaultProcessTimeout bounds one background ingestion run.
const DefaultProcessTimeout = 10 * time.Minute

// Pipeline drives documents through the ingestion lifecycle: extract,
// chunk, embed, index, persist. Each document moves PROCESSING to READY
// on success or FAILED with a short reason on any error. The status flip
// to READY happens only after both the chunks and the index are stored,
// so a READY document always has retrievable artifacts.
type Pipeline struct {
	registry   driven.DocumentRegistry
	extractors driven.ExtractorRegistry
	chunker    driven.Chunker
	embedder   driven.EmbeddingService
	builder    driven.IndexBuilder
	chunkStore driven.ChunkStore
	indexStore driven.IndexStore
	dispatcher *Dispatcher

	uploadDir      string
	processTimeout time.Duration
}

// NewPipeline creates a new ingestion pipeline. Uploaded files are
// copied into uploadDir, named by document ID.
func NewPipeline(
	registry driven.DocumentRegistry,
	extractors driven.ExtractorRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	builder driven.IndexBuilder,
	chunkStore driven.ChunkStore,
	indexStore driven.IndexStore,
	dispatcher *Dispatcher,
	uploadDir string,
) *Pipeline {
	return &Pipeline{
		registry:       registry,
		extractors:     extractors,
		chunker:        chunker,
		embedder:       embedder,
		builder:        builder,
		chunkStore:     chunkStore,
		indexStore:     indexStore,
		dispatcher:     dispatcher,
		uploadDir:      uploadDir,
		processTimeout: DefaultProcessTimeout,
	}
}

// Upload validates the file, registers it with status PROCESSING,
// copies it into the upload directory and schedules background
// ingestion. Unsupported extensions are rejected before any record is
// created.
func (p *Pipeline) Upload(ctx context.Context, srcPath, ownerID string) (*domain.Document, error) {
	filename := filepath.Base(srcPath)
	ext := normaliseExt(filepath.Ext(filename))
	if !p.extractors.Supported(ext) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}

	doc := &domain.Document{
		ID:       uuid.NewString(),
		Filename: filename,
		OwnerID:  ownerID,
		Status:   domain.StatusProcessing,
	}
	if err := p.registry.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("registering document: %w", err)
	}

	storedPath, err := p.storeUpload(srcPath, doc.ID, ext)
	if err != nil {
		p.fail(ctx, doc.ID, "upload could not be stored")
		return nil, fmt.Errorf("storing upload: %w", err)
	}
	if err := p.registry.SetFilePath(ctx, doc.ID, storedPath); err != nil {
		p.fail(ctx, doc.ID, "upload could not be recorded")
		return nil, fmt.Errorf("recording file path: %w", err)
	}
	doc.FilePath = storedPath

	logger.Info("Uploaded %s as document %s", filename, doc.ID)
	p.schedule(doc.ID)
	return doc, nil
}

// Reingest schedules a fresh processing run for an existing document.
func (p *Pipeline) Reingest(ctx context.Context, documentID string) error {
	doc, err := p.registry.Get(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.FilePath == "" {
		return fmt.Errorf("%w: document %s has no stored file", domain.ErrInvalidInput, documentID)
	}

	if err := p.registry.SetStatus(ctx, documentID, domain.StatusProcessing, driven.StatusFields{}); err != nil {
		return fmt.Errorf("resetting status: %w", err)
	}
	p.schedule(documentID)
	return nil
}

// Status returns the current registry snapshot for a document.
func (p *Pipeline) Status(ctx context.Context, documentID string) (*domain.Document, error) {
	return p.registry.Get(ctx, documentID)
}

// List returns all documents belonging to a user.
func (p *Pipeline) List(ctx context.Context, ownerID string) ([]domain.Document, error) {
	return p.registry.ListByOwner(ctx, ownerID)
}

// Wait blocks until all scheduled ingestion runs have finished.
func (p *Pipeline) Wait() {
	p.dispatcher.Wait()
}

// schedule hands a processing run to the dispatcher. Runs for the same
// document never overlap.
func (p *Pipeline) schedule(documentID string) {
	p.dispatcher.Dispatch(documentID, func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.processTimeout)
		defer cancel()
		p.process(ctx, documentID)
	})
}

// process executes one ingestion run. Any failure flips the document to
// FAILED with a short reason; success flips it to READY with the chunk
// count, strictly after the chunks and index are persisted.
func (p *Pipeline) process(ctx context.Context, documentID string) {
	logger.Section("Processing " + documentID)

	doc, err := p.registry.Get(ctx, documentID)
	if err != nil {
		logger.Error("Cannot load document %s: %v", documentID, err)
		return
	}

	// A coalesced follow-up run starts after the previous run flipped the
	// document READY. Re-mark PROCESSING so the artifacts are never
	// rewritten behind a READY status.
	if err := p.registry.SetStatus(ctx, documentID, domain.StatusProcessing, driven.StatusFields{}); err != nil {
		logger.Error("Cannot mark %s processing: %v", documentID, err)
		return
	}

	ext := normaliseExt(filepath.Ext(doc.FilePath))
	text, err := p.extractors.Extract(ctx, doc.FilePath, ext)
	if err != nil {
		logger.Error("Extraction failed for %s: %v", documentID, err)
		p.fail(ctx, documentID, "text extraction failed")
		return
	}

	pieces := p.chunker.Split(text)
	if len(pieces) == 0 {
		logger.Info("Document %s has no extractable content", documentID)
		p.fail(ctx, documentID, "no extractable content")
		return
	}
	logger.Debug("Split document %s into %d chunks", documentID, len(pieces))

	vectors, err := p.embedder.EmbedBatch(ctx, pieces)
	if err != nil {
		logger.Error("Embedding failed for %s: %v", documentID, err)
		p.fail(ctx, documentID, "embedding failed")
		return
	}

	index, err := p.builder.Build(vectors)
	if err != nil {
		logger.Error("Index build failed for %s: %v", documentID, err)
		p.fail(ctx, documentID, "index build failed")
		return
	}

	chunks := make([]domain.Chunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = domain.Chunk{
			ID:         uuid.NewString(),
			DocumentID: documentID,
			Content:    content,
			Position:   i,
		}
	}

	if err := p.chunkStore.SaveChunks(ctx, documentID, chunks); err != nil {
		logger.Error("Saving chunks failed for %s: %v", documentID, err)
		p.fail(ctx, documentID, "persistence failed")
		return
	}
	if err := p.indexStore.SaveIndex(ctx, documentID, index); err != nil {
		logger.Error("Saving index failed for %s: %v", documentID, err)
		p.fail(ctx, documentID, "persistence failed")
		return
	}

	if err := p.registry.SetStatus(ctx, documentID, domain.StatusReady, driven.StatusFields{
		ChunksCount: len(chunks),
	}); err != nil {
		logger.Error("Status update failed for %s: %v", documentID, err)
		return
	}
	logger.Info("Document %s ready with %d chunks", documentID, len(chunks))
}

// fail marks a document FAILED with a short reason.
func (p *Pipeline) fail(ctx context.Context, documentID, reason string) {
	if err := p.registry.SetStatus(ctx, documentID, domain.StatusFailed, driven.StatusFields{
		Error: reason,
	}); err != nil {
		logger.Error("Cannot mark %s failed: %v", documentID, err)
	}
}

// storeUpload copies the source file into the upload directory as
// <document_id>.<ext>, so re-uploads of identically named files never
// collide.
func (p *Pipeline) storeUpload(srcPath, documentID, ext string) (string, error) {
	if err := os.MkdirAll(p.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("opening source file: %w", err)
	}
	defer src.Close()

	destPath := filepath.Join(p.uploadDir, documentID+"."+ext)
	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}

	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		os.Remove(destPath)
		return "", fmt.Errorf("copying upload: %w", err)
	}
	if err := dest.Close(); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("closing upload file: %w", err)
	}
	return destPath, nil
}

// normaliseExt lowercases an extension and strips the leading dot.
func normaliseExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
