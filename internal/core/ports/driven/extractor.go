package driven

import "context"

// Extractor converts a raw uploaded file into plain text.
// Each extractor handles specific file extensions (e.g. pdf, txt, docx).
// Extraction has no side effects beyond reading the file.
type Extractor interface {
	// SupportedExtensions returns the lowercase extensions this
	// extractor handles, without the leading dot.
	SupportedExtensions() []string

	// Extract reads the file at path and returns its plain text.
	// Returns domain.ErrExtractionFailed (wrapped) if the underlying
	// parser cannot read the file. An empty file yields an empty
	// string, not an error.
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractorRegistry selects an extractor by declared file extension.
type ExtractorRegistry interface {
	// Extract dispatches to the extractor registered for ext.
	// Returns domain.ErrUnsupportedFormat for unknown extensions.
	Extract(ctx context.Context, path, ext string) (string, error)

	// Supported reports whether an extractor is registered for ext.
	Supported(ext string) bool
}

// CommandRunner executes an external command and returns its stdout.
// Used by extractors that shell out to system tools (e.g. pdftotext).
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
