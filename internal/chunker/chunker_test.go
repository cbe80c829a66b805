package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_EmptyInput(t *testing.T) {
	c := New(Config{})

	assert.Nil(t, c.Split(""))
	assert.Nil(t, c.Split("   \n\n\t  "))
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	c := New(Config{})

	text := "The lessee shall pay rent on the first day of each month."
	chunks := c.Split(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplit_Deterministic(t *testing.T) {
	c := New(Config{ChunkSize: 30, ChunkOverlap: 5})

	text := strings.Repeat("The party of the first part agrees to indemnify the party of the second part. ", 20)

	first := c.Split(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Split(text))
	}
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	para1 := "This agreement commences on the first day of January and continues for a period of twelve months thereafter."
	para2 := "Either party may terminate this agreement by giving thirty days written notice to the other party at any time."
	para3 := "All notices under this agreement must be delivered in writing to the registered address of the receiving party."
	text := para1 + "\n\n" + para2 + "\n\n" + para3

	// Size fits one paragraph but not two.
	c := New(Config{ChunkSize: 30, ChunkOverlap: 1})
	chunks := c.Split(text)

	require.Len(t, chunks, 3)
	assert.Equal(t, para1, chunks[0])
	assert.Equal(t, para2, chunks[1])
	assert.Equal(t, para3, chunks[2])
}

func TestSplit_OverlapCarriesTail(t *testing.T) {
	var sentences []string
	for _, s := range []string{
		"The first clause covers payment obligations of the tenant in detail",
		"The second clause covers maintenance duties of the landlord in detail",
		"The third clause covers termination rights of either party in detail",
		"The fourth clause covers dispute resolution through binding arbitration",
	} {
		sentences = append(sentences, s)
	}
	text := strings.Join(sentences, ". ") + "."

	c := New(Config{ChunkSize: 40, ChunkOverlap: 20})
	chunks := c.Split(text)

	require.Greater(t, len(chunks), 1)
	// Each chunk after the first must start with text already seen at
	// the end of its predecessor.
	for i := 1; i < len(chunks); i++ {
		head := strings.Fields(chunks[i])[0]
		assert.Contains(t, chunks[i-1], head)
	}
}

func TestSplit_LegalSectionMarkers(t *testing.T) {
	text := "Clause 1 requires the buyer to remit the full purchase price at closing without deduction or setoff of any kind. " +
		"Clause 2 requires the seller to deliver marketable title free of all liens and encumbrances at the closing date. " +
		"Clause 3 allocates all transfer taxes and recording fees between the parties in equal shares on completion."

	c := New(Config{ChunkSize: 30, ChunkOverlap: 1, Separators: []string{"\n\n", "Clause ", " "}})
	chunks := c.Split(text)

	require.Len(t, chunks, 3)
	assert.True(t, strings.HasPrefix(chunks[1], "Clause 2"))
	assert.True(t, strings.HasPrefix(chunks[2], "Clause 3"))
}

func TestSplit_DropsTinyFragments(t *testing.T) {
	c := New(Config{ChunkSize: 10, ChunkOverlap: 1, MinChunkWords: 5})

	// The trailing fragment has fewer than five words.
	text := "The vendor warrants that the goods conform to the agreed specification in every material respect.\n\nSigned. Done."
	chunks := c.Split(text)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.GreaterOrEqual(t, len(strings.Fields(chunk)), 5, "chunk %q", chunk)
	}
}

func TestSplit_ChunksRespectSizeBudget(t *testing.T) {
	c := New(Config{ChunkSize: 25, ChunkOverlap: 5})

	text := strings.Repeat("Each provision of this deed is severable from the others and remains in force. ", 30)
	chunks := c.Split(text)

	require.NotEmpty(t, chunks)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, tokens(chunk), 25, "chunk %q", chunk)
	}
}

func TestSplit_NoTextLost(t *testing.T) {
	para1 := "The guarantor unconditionally guarantees the punctual performance of all obligations of the principal debtor."
	para2 := "Demand under this guarantee may be made at any time after default and shall be conclusive evidence of the amount due."
	text := para1 + "\n\n" + para2

	c := New(Config{ChunkSize: 30, ChunkOverlap: 1})
	joined := strings.Join(c.Split(text), " ")

	for _, word := range strings.Fields(text) {
		assert.Contains(t, joined, word)
	}
}

func TestSplit_HardCutUnbrokenRun(t *testing.T) {
	c := New(Config{ChunkSize: 10, ChunkOverlap: 2, Separators: []string{"\n\n"}, MinChunkWords: 1})

	text := strings.Repeat("x", 200)
	chunks := c.Split(text)

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, tokens(chunk), 10)
	}
}

func TestConfig_Defaults(t *testing.T) {
	c := New(Config{})

	assert.Equal(t, DefaultChunkSize, c.cfg.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, c.cfg.ChunkOverlap)
	assert.Equal(t, DefaultSeparators, c.cfg.Separators)
	assert.Equal(t, DefaultMinChunkWords, c.cfg.MinChunkWords)
}

func TestConfig_OverlapClampedBelowSize(t *testing.T) {
	c := New(Config{ChunkSize: 20, ChunkOverlap: 50})

	assert.Less(t, c.cfg.ChunkOverlap, c.cfg.ChunkSize)
}
