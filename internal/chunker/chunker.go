// Package chunker splits extracted document text into overlapping,
// boundary-aware segments sized for the embedding model.
package chunker

import (
	"strings"

	"github.com/legalease-labs/legalease/internal/core/ports/driven"
)

// DefaultChunkSize is the default chunk size in tokens. Sized so a
// chunk plus instruction prefix stays inside a 512-token embedding
// model limit.
const DefaultChunkSize = 200

// DefaultChunkOverlap is the default overlap between chunks in tokens.
const DefaultChunkOverlap = 40

// DefaultMinChunkWords is the minimum word count for a chunk to be
// emitted. Fragments below this carry too little meaning to retrieve.
const DefaultMinChunkWords = 5

// charsPerToken approximates the embedding model's tokeniser: English
// legal prose averages roughly four characters per token.
const charsPerToken = 4

// DefaultSeparators is the split-point priority order: paragraph
// boundaries first, then lines, then legal section markers, then
// sentence ends, then words.
var DefaultSeparators = []string{
	"\n\n",
	"\n",
	"Clause ",
	"Section ",
	"Article ",
	"Paragraph ",
	". ",
	" ",
}

// Config holds chunker configuration. The zero value of any field is
// replaced by the package default. Sizes are expressed in tokens, the
// unit the embedder consumes.
type Config struct {
	// ChunkSize is the maximum tokens per chunk.
	ChunkSize int

	// ChunkOverlap is how many tokens of the previous chunk's tail are
	// repeated at the start of the next chunk.
	ChunkOverlap int

	// Separators are tried in order when a span exceeds ChunkSize.
	Separators []string

	// MinChunkWords drops chunks with fewer words than this.
	MinChunkWords int
}

func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.ChunkOverlap < 0 {
		c.ChunkOverlap = 0
	}
	if c.ChunkOverlap == 0 {
		c.ChunkOverlap = DefaultChunkOverlap
	}
	if c.ChunkOverlap >= c.ChunkSize {
		c.ChunkOverlap = c.ChunkSize / 4
	}
	if len(c.Separators) == 0 {
		c.Separators = DefaultSeparators
	}
	if c.MinChunkWords <= 0 {
		c.MinChunkWords = DefaultMinChunkWords
	}
	return c
}

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker is a deterministic recursive text splitter. Identical input
// and configuration always produce an identical chunk sequence.
type Chunker struct {
	cfg Config
}

// New creates a chunker with the given configuration.
// Zero-valued fields fall back to package defaults.
func New(cfg Config) *Chunker {
	return &Chunker{cfg: cfg.withDefaults()}
}

// Split returns the chunk texts in document order. Empty or
// whitespace-only input yields no chunks.
func (c *Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	pieces := c.split(text, c.cfg.Separators)
	merged := c.merge(pieces)

	chunks := make([]string, 0, len(merged))
	for _, chunk := range merged {
		chunk = strings.TrimSpace(chunk)
		if len(strings.Fields(chunk)) < c.cfg.MinChunkWords {
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

// tokens estimates the token count of s.
func tokens(s string) int {
	return (len(s) + charsPerToken - 1) / charsPerToken
}

// split recursively divides text into pieces no larger than ChunkSize,
// trying each separator in priority order. Separators stay attached as
// the prefix of the following piece so no text is lost.
func (c *Chunker) split(text string, seps []string) []string {
	if tokens(text) <= c.cfg.ChunkSize {
		return []string{text}
	}
	if len(seps) == 0 {
		return c.hardCut(text)
	}

	parts := splitKeep(text, seps[0])
	if len(parts) == 1 {
		return c.split(text, seps[1:])
	}

	var out []string
	for _, part := range parts {
		if tokens(part) <= c.cfg.ChunkSize {
			out = append(out, part)
		} else {
			out = append(out, c.split(part, seps[1:])...)
		}
	}
	return out
}

// splitKeep splits text on sep, keeping sep as the prefix of each
// following piece. Empty pieces are dropped.
func splitKeep(text, sep string) []string {
	raw := strings.Split(text, sep)
	parts := make([]string, 0, len(raw))
	for i, r := range raw {
		if i > 0 {
			r = sep + r
		}
		if r == "" {
			continue
		}
		parts = append(parts, r)
	}
	return parts
}

// hardCut slices a span with no usable separators into fixed windows.
// Only reachable when the configured separators cannot break the span
// (e.g. one enormous unbroken token).
func (c *Chunker) hardCut(text string) []string {
	window := c.cfg.ChunkSize * charsPerToken
	step := (c.cfg.ChunkSize - c.cfg.ChunkOverlap) * charsPerToken
	if step <= 0 {
		step = window
	}

	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + window
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}

// merge greedily packs pieces into chunks of at most ChunkSize tokens.
// When a chunk is emitted, the trailing pieces within the overlap window
// are carried into the next chunk to preserve context across boundaries.
func (c *Chunker) merge(pieces []string) []string {
	var chunks []string
	var window []string
	total := 0

	for _, piece := range pieces {
		pt := tokens(piece)
		if total+pt > c.cfg.ChunkSize && len(window) > 0 {
			chunks = append(chunks, strings.Join(window, ""))
			for len(window) > 0 && (total > c.cfg.ChunkOverlap || total+pt > c.cfg.ChunkSize) {
				total -= tokens(window[0])
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += pt
	}

	if len(window) > 0 {
		chunks = append(chunks, strings.Join(window, ""))
	}
	return chunks
}
