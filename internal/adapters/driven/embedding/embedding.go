// Package embedding holds helpers shared by the embedding service
// adapters.
package embedding

import "math"

// MaxInputRunes caps the text sent to an embedding backend. Chunks are
// already bounded by the splitter, but raw queries are not.
const MaxInputRunes = 8192

// Normalise scales v to unit length in place and returns it. Searching
// normalised vectors by inner product ranks identically to cosine
// similarity. A zero vector is returned unchanged.
func Normalise(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
	return v
}

// Truncate trims text to at most MaxInputRunes runes.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxInputRunes {
		return text
	}
	return string(runes[:MaxInputRunes])
}
