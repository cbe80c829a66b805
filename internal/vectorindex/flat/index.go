// Package flat provides an exact inner-product vector index.
//
// The index is flat: every query is scored against every stored vector.
// For per-document retrieval the vector counts are small (hundreds of
// chunks), so exact search is both simpler and more accurate than an
// approximate structure, and the results are fully deterministic.
package flat

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/legalease-labs/legalease/internal/core/ports/driven"
)

// magic identifies a serialised flat index blob.
const magic = "LEFI"

// formatVersion is bumped on incompatible serialisation changes.
const formatVersion uint32 = 1

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an immutable inner-product nearest-neighbour index over the
// embedding vectors of one document. Row i holds the vector for chunk i.
type Index struct {
	dim  int
	rows int
	// data holds all vectors flattened row-major: row i occupies
	// data[i*dim : (i+1)*dim].
	data []float32
}

// Ensure Builder implements the interface.
var _ driven.IndexBuilder = (*Builder)(nil)

// Builder constructs flat indexes.
type Builder struct{}

// NewBuilder creates a flat index builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build constructs an index over vectors, preserving row order.
// All vectors must share the same dimension. Zero vectors produce a
// valid empty index.
func (b *Builder) Build(vectors [][]float32) (driven.VectorIndex, error) {
	return Build(vectors)
}

// Build constructs a flat index from the given vectors.
func Build(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return &Index{}, nil
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, errors.New("flat: zero-dimension vector")
	}

	data := make([]float32, 0, len(vectors)*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("flat: vector %d has dimension %d, want %d", i, len(v), dim)
		}
		data = append(data, v...)
	}

	return &Index{dim: dim, rows: len(vectors), data: data}, nil
}

// Len returns the number of stored vectors.
func (idx *Index) Len() int {
	return idx.rows
}

// Dimensions returns the vector dimensionality.
func (idx *Index) Dimensions() int {
	return idx.dim
}

// Search returns up to k nearest neighbours of query by inner product,
// descending score. Ties are broken by lower row index so results are
// deterministic. k larger than the stored count returns all rows; an
// empty index or non-positive k returns an empty result.
func (idx *Index) Search(query []float32, k int) []driven.VectorHit {
	if k <= 0 || idx.rows == 0 || len(query) != idx.dim {
		return nil
	}
	if k > idx.rows {
		k = idx.rows
	}

	hits := make([]driven.VectorHit, idx.rows)
	for row := 0; row < idx.rows; row++ {
		offset := row * idx.dim
		var score float32
		for j, q := range query {
			score += q * idx.data[offset+j]
		}
		hits[row] = driven.VectorHit{Row: row, Score: score}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Row < hits[b].Row
	})

	return hits[:k]
}

// WriteTo serialises the index. The format is private to this core:
// magic, version, dimension, row count, then row-major little-endian
// float32 data.
func (idx *Index) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	if _, err := bw.WriteString(magic); err != nil {
		return n, err
	}
	n += int64(len(magic))

	header := make([]byte, 12)
	binary.LittleEndian.PutUint32(header[0:], formatVersion)
	binary.LittleEndian.PutUint32(header[4:], uint32(idx.dim))
	binary.LittleEndian.PutUint32(header[8:], uint32(idx.rows))
	if _, err := bw.Write(header); err != nil {
		return n, err
	}
	n += int64(len(header))

	buf := make([]byte, 4)
	for _, f := range idx.data {
		binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
		if _, err := bw.Write(buf); err != nil {
			return n, err
		}
		n += 4
	}

	return n, bw.Flush()
}

// Read deserialises an index previously written with WriteTo.
func Read(r io.Reader) (*Index, error) {
	br := bufio.NewReader(r)

	head := make([]byte, len(magic))
	if _, err := io.ReadFull(br, head); err != nil {
		return nil, fmt.Errorf("flat: reading magic: %w", err)
	}
	if string(head) != magic {
		return nil, errors.New("flat: not a flat index blob")
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("flat: reading header: %w", err)
	}
	version := binary.LittleEndian.Uint32(header[0:])
	if version != formatVersion {
		return nil, fmt.Errorf("flat: unsupported format version %d", version)
	}
	dim := int(binary.LittleEndian.Uint32(header[4:]))
	rows := int(binary.LittleEndian.Uint32(header[8:]))

	if rows == 0 {
		return &Index{}, nil
	}
	if dim <= 0 {
		return nil, fmt.Errorf("flat: invalid dimension %d", dim)
	}

	payload := make([]byte, rows*dim*4)
	if _, err := io.ReadFull(br, payload); err != nil {
		return nil, fmt.Errorf("flat: reading vectors: %w", err)
	}

	data := make([]float32, rows*dim)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
	}

	return &Index{dim: dim, rows: rows, data: data}, nil
}
