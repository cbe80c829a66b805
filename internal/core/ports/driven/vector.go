package driven

// VectorIndex is a static nearest-neighbour structure over the embedding
// vectors of one document. Row i holds the vector for chunk i; that
// pairing is the system's most important consistency invariant.
//
// An index is immutable after build. There is no incremental insert:
// re-ingestion rebuilds the index wholesale.
type VectorIndex interface {
	// Search returns up to k nearest neighbours of query by inner
	// product, descending score, ties broken by lower row index.
	// k greater than Len returns all rows; an empty index always
	// returns an empty result.
	Search(query []float32, k int) []VectorHit

	// Len returns the number of stored vectors.
	Len() int

	// Dimensions returns the vector dimensionality.
	Dimensions() int
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// Row is the vector's row index, equal to the chunk position.
	Row int

	// Score is the inner-product similarity.
	Score float32
}

// IndexBuilder constructs a VectorIndex from embedding vectors.
type IndexBuilder interface {
	// Build constructs an index over vectors, preserving row order.
	// All vectors must share the same dimension. Zero vectors produce
	// a valid empty index.
	Build(vectors [][]float32) (VectorIndex, error)
}
