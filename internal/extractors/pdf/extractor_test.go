package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease-labs/legalease/internal/core/domain"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestExtract_WithMockRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("LEASE AGREEMENT\n\nThe term begins on the first of March.\n")}
	e := NewWithRunner(runner)

	text, err := e.Extract(context.Background(), "/path/to/lease.pdf")
	require.NoError(t, err)
	assert.Equal(t, "LEASE AGREEMENT\n\nThe term begins on the first of March.", text)
}

func TestExtract_RunnerFailure(t *testing.T) {
	runner := &mockRunner{err: errors.New("syntax error: damaged xref table")}
	e := NewWithRunner(runner)

	_, err := e.Extract(context.Background(), "/path/to/corrupt.pdf")
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "damaged xref table")
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{"pdf"}, New().SupportedExtensions())
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Error(t, ErrPDFToolNotFound)
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}
