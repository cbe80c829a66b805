package extractors

import (
	"context"
	"fmt"
	"strings"

	"github.com/legalease-labs/legalease/internal/core/domain"
	"github.com/legalease-labs/legalease/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches extraction to the extractor registered for a
// file extension.
type Registry struct {
	byExt map[string]driven.Extractor
}

// NewRegistry creates a registry over the given extractors.
// Later extractors win when extensions collide.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byExt: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		for _, ext := range e.SupportedExtensions() {
			r.byExt[normaliseExt(ext)] = e
		}
	}
	return r
}

// Extract dispatches to the extractor registered for ext.
func (r *Registry) Extract(ctx context.Context, path, ext string) (string, error) {
	e, ok := r.byExt[normaliseExt(ext)]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}
	return e.Extract(ctx, path)
}

// Supported reports whether an extractor is registered for ext.
func (r *Registry) Supported(ext string) bool {
	_, ok := r.byExt[normaliseExt(ext)]
	return ok
}

// normaliseExt lowercases and strips the leading dot so ".PDF", "pdf"
// and ".pdf" all resolve to the same extractor.
func normaliseExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
