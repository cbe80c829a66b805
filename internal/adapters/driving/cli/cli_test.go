package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driving"
)

// execute runs the root command with args and captures output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// fakeIngestion is a test double for the ingestion service.
type fakeIngestion struct {
	uploaded  *domain.Document
	uploadErr error
	documents map[string]*domain.Document
	listed    []domain.Document
}

func (f *fakeIngestion) Upload(_ context.Context, srcPath, ownerID string) (*domain.Document, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploaded, nil
}

func (f *fakeIngestion) Reingest(_ context.Context, documentID string) error {
	if _, ok := f.documents[documentID]; !ok {
		return domain.ErrNotFound
	}
	return nil
}

func (f *fakeIngestion) Status(_ context.Context, documentID string) (*domain.Document, error) {
	doc, ok := f.documents[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (f *fakeIngestion) List(context.Context, string) ([]domain.Document, error) {
	return f.listed, nil
}

// fakeQA is a test double for the question answering service.
type fakeQA struct {
	answer  *driving.Answer
	askErr  error
	history []domain.ChatRecord
}

func (f *fakeQA) Ask(context.Context, string, string, string, int) (*driving.Answer, error) {
	if f.askErr != nil {
		return nil, f.askErr
	}
	return f.answer, nil
}

func (f *fakeQA) History(context.Context, string) ([]domain.ChatRecord, error) {
	return f.history, nil
}

// fakeRetrieval is a test double for the retrieval service.
type fakeRetrieval struct {
	results []domain.ScoredChunk
	err     error
}

func (f *fakeRetrieval) Retrieve(context.Context, string, string, int, int) ([]domain.ScoredChunk, error) {
	return f.results, f.err
}

func TestVersionCommand(t *testing.T) {
	SetServices(nil, nil, nil)

	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "legalease version")
}

func TestIngestCommand(t *testing.T) {
	SetServices(&fakeIngestion{
		uploaded: &domain.Document{
			ID:       "doc-1",
			Filename: "lease.pdf",
			Status:   domain.StatusProcessing,
		},
	}, nil, nil)

	output, err := execute(t, "ingest", "lease.pdf")
	require.NoError(t, err)
	assert.Contains(t, output, "doc-1")
	assert.Contains(t, output, "PROCESSING")
}

func TestIngestCommand_UnsupportedFormat(t *testing.T) {
	SetServices(&fakeIngestion{uploadErr: domain.ErrUnsupportedFormat}, nil, nil)

	_, err := execute(t, "ingest", "data.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestIngestCommand_NoService(t *testing.T) {
	SetServices(nil, nil, nil)

	_, err := execute(t, "ingest", "lease.pdf")
	assert.Error(t, err)
}

func TestStatusCommand(t *testing.T) {
	SetServices(&fakeIngestion{
		documents: map[string]*domain.Document{
			"doc-1": {
				ID:          "doc-1",
				Filename:    "lease.pdf",
				Status:      domain.StatusReady,
				ChunksCount: 12,
				CreatedAt:   time.Now(),
				UpdatedAt:   time.Now(),
			},
		},
	}, nil, nil)

	output, err := execute(t, "status", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, output, "READY")
	assert.Contains(t, output, "12")
}

func TestStatusCommand_Failed(t *testing.T) {
	SetServices(&fakeIngestion{
		documents: map[string]*domain.Document{
			"doc-1": {
				ID:       "doc-1",
				Filename: "empty.txt",
				Status:   domain.StatusFailed,
				Error:    "no extractable content",
			},
		},
	}, nil, nil)

	output, err := execute(t, "status", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, output, "FAILED")
	assert.Contains(t, output, "no extractable content")
}

func TestStatusCommand_NotFound(t *testing.T) {
	SetServices(&fakeIngestion{documents: map[string]*domain.Document{}}, nil, nil)

	_, err := execute(t, "status", "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListCommand(t *testing.T) {
	SetServices(&fakeIngestion{
		listed: []domain.Document{
			{ID: "a", Filename: "one.pdf", Status: domain.StatusReady, ChunksCount: 3},
			{ID: "b", Filename: "two.txt", Status: domain.StatusProcessing},
		},
	}, nil, nil)

	output, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "one.pdf")
	assert.Contains(t, output, "two.txt")
	assert.Contains(t, output, "Total: 2 documents")
}

func TestListCommand_Empty(t *testing.T) {
	SetServices(&fakeIngestion{}, nil, nil)

	output, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No documents found")
}

func TestSearchCommand(t *testing.T) {
	SetServices(nil, &fakeRetrieval{
		results: []domain.ScoredChunk{
			{Content: "The deposit is held in escrow.", Score: 0.91, Position: 1},
		},
	}, nil)

	output, err := execute(t, "search", "doc-1", "deposit")
	require.NoError(t, err)
	assert.Contains(t, output, "escrow")
	assert.Contains(t, output, "0.910")
}

func TestSearchCommand_NotIndexed(t *testing.T) {
	SetServices(nil, &fakeRetrieval{err: domain.ErrNotIndexed}, nil)

	_, err := execute(t, "search", "doc-1", "deposit")
	assert.ErrorIs(t, err, domain.ErrNotIndexed)
}

func TestAskCommand(t *testing.T) {
	SetServices(nil, nil, &fakeQA{
		answer: &driving.Answer{
			Text:     "The notice period is thirty days.",
			Contexts: []string{"Clause 9. Thirty days notice."},
			Scores:   []float32{0.88},
		},
	})

	output, err := execute(t, "ask", "doc-1", "What is the notice period?")
	require.NoError(t, err)
	assert.Contains(t, output, "thirty days")
}

func TestAskCommand_WithContexts(t *testing.T) {
	SetServices(nil, nil, &fakeQA{
		answer: &driving.Answer{
			Text:     "The notice period is thirty days.",
			Contexts: []string{"Clause 9. Thirty days notice."},
			Scores:   []float32{0.88},
		},
	})

	output, err := execute(t, "ask", "doc-1", "What is the notice period?", "--contexts")
	require.NoError(t, err)
	assert.Contains(t, output, "Based on:")
	assert.Contains(t, output, "Clause 9")
}

func TestAskCommand_NotReady(t *testing.T) {
	SetServices(nil, nil, &fakeQA{askErr: domain.ErrNotReady})

	_, err := execute(t, "ask", "doc-1", "Anything?")
	assert.ErrorIs(t, err, domain.ErrNotReady)
}

func TestAskCommand_NoService(t *testing.T) {
	SetServices(nil, nil, nil)

	_, err := execute(t, "ask", "doc-1", "Anything?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestHistoryCommand(t *testing.T) {
	SetServices(nil, nil, &fakeQA{
		history: []domain.ChatRecord{
			{Question: "What is the rent?", Answer: "1200 euro.", CreatedAt: time.Now()},
		},
	})

	output, err := execute(t, "history", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, output, "What is the rent?")
	assert.Contains(t, output, "1200 euro.")
}

func TestReingestCommand(t *testing.T) {
	SetServices(&fakeIngestion{
		documents: map[string]*domain.Document{"doc-1": {ID: "doc-1"}},
	}, nil, nil)

	output, err := execute(t, "reingest", "doc-1")
	require.NoError(t, err)
	assert.Contains(t, output, "scheduled for reprocessing")
}
