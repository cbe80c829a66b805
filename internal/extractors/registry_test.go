package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease-labs/legalease/internal/core/domain"
)

// stubExtractor is a test double for driven.Extractor.
type stubExtractor struct {
	exts   []string
	result string
	err    error
}

func (s *stubExtractor) SupportedExtensions() []string { return s.exts }

func (s *stubExtractor) Extract(_ context.Context, _ string) (string, error) {
	return s.result, s.err
}

func TestRegistry_Extract(t *testing.T) {
	r := NewRegistry(
		&stubExtractor{exts: []string{"txt"}, result: "plain"},
		&stubExtractor{exts: []string{"pdf"}, result: "portable"},
	)
	ctx := context.Background()

	text, err := r.Extract(ctx, "/f.txt", "txt")
	require.NoError(t, err)
	assert.Equal(t, "plain", text)

	text, err = r.Extract(ctx, "/f.pdf", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "portable", text)
}

func TestRegistry_ExtensionNormalisation(t *testing.T) {
	r := NewRegistry(&stubExtractor{exts: []string{"txt"}, result: "ok"})
	ctx := context.Background()

	for _, ext := range []string{"txt", ".txt", "TXT", ".TXT"} {
		text, err := r.Extract(ctx, "/f", ext)
		require.NoError(t, err, "ext %q", ext)
		assert.Equal(t, "ok", text)
		assert.True(t, r.Supported(ext))
	}
}

func TestRegistry_UnsupportedFormat(t *testing.T) {
	r := NewRegistry(&stubExtractor{exts: []string{"txt"}})

	_, err := r.Extract(context.Background(), "/f.csv", "csv")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.False(t, r.Supported("csv"))
}
