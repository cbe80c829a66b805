package flat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Empty(t *testing.T) {
	idx, err := Build(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, idx.Len())
	assert.Nil(t, idx.Search([]float32{1, 0}, 5))
}

func TestBuild_DimensionMismatch(t *testing.T) {
	_, err := Build([][]float32{{1, 0}, {1, 0, 0}})
	assert.Error(t, err)
}

func TestSearch_RanksByInnerProduct(t *testing.T) {
	idx, err := Build([][]float32{
		{0, 1},    // row 0: orthogonal to query
		{1, 0},    // row 1: identical to query
		{0.6, 0.8}, // row 2: partial match
	})
	require.NoError(t, err)

	hits := idx.Search([]float32{1, 0}, 3)
	require.Len(t, hits, 3)

	assert.Equal(t, 1, hits[0].Row)
	assert.Equal(t, 2, hits[1].Row)
	assert.Equal(t, 0, hits[2].Row)

	// Scores non-increasing.
	for i := 1; i < len(hits); i++ {
		assert.LessOrEqual(t, hits[i].Score, hits[i-1].Score)
	}
}

func TestSearch_TieBrokenByLowerRow(t *testing.T) {
	idx, err := Build([][]float32{
		{0.5, 0.5},
		{1, 0},
		{1, 0},
	})
	require.NoError(t, err)

	hits := idx.Search([]float32{1, 0}, 2)
	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Row)
	assert.Equal(t, 2, hits[1].Row)
}

func TestSearch_KLargerThanStored(t *testing.T) {
	idx, err := Build([][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)

	hits := idx.Search([]float32{1, 0}, 10)
	assert.Len(t, hits, 2)
}

func TestSearch_KZero(t *testing.T) {
	idx, err := Build([][]float32{{1, 0}})
	require.NoError(t, err)

	assert.Nil(t, idx.Search([]float32{1, 0}, 0))
}

func TestSearch_QueryDimensionMismatch(t *testing.T) {
	idx, err := Build([][]float32{{1, 0}})
	require.NoError(t, err)

	assert.Nil(t, idx.Search([]float32{1, 0, 0}, 1))
}

func TestSearch_NeverReturnsOutOfRangeRow(t *testing.T) {
	idx, err := Build([][]float32{{1, 0}, {0, 1}, {0.7, 0.7}})
	require.NoError(t, err)

	for _, hit := range idx.Search([]float32{0.3, 0.9}, 10) {
		assert.GreaterOrEqual(t, hit.Row, 0)
		assert.Less(t, hit.Row, idx.Len())
	}
}

func TestRoundTrip(t *testing.T) {
	original, err := Build([][]float32{
		{0.1, 0.2, 0.3},
		{-0.4, 0.5, -0.6},
		{0.7, -0.8, 0.9},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = original.WriteTo(&buf)
	require.NoError(t, err)

	restored, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, original.Len(), restored.Len())
	assert.Equal(t, original.Dimensions(), restored.Dimensions())
	assert.Equal(t, original.data, restored.data)

	// Same query produces identical results.
	query := []float32{0.5, 0.5, 0.5}
	assert.Equal(t, original.Search(query, 3), restored.Search(query, 3))
}

func TestRoundTrip_EmptyIndex(t *testing.T) {
	original, err := Build(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = original.WriteTo(&buf)
	require.NoError(t, err)

	restored, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, restored.Len())
}

func TestRead_RejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not an index")))
	assert.Error(t, err)
}
