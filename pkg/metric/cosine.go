package metric

import "math"

// Cosine is the cosine similarity of term-frequency vectors.
// It rewards shared vocabulary regardless of order and needs exact token equality.
// See https://en.wikipedia.org/wiki/Cosine_similarity.
type Cosine struct{}

func (Cosine) Name() string { return NameCosine }

// Score is symmetric: Score(a, b) == Score(b, a).
func (Cosine) Score(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	fa := termFrequency(a)
	fb := termFrequency(b)

	// Counts are integers, so these sums are exact and independent of map order.
	var dot, normA, normB float64
	for tok, ca := range fa {
		normA += ca * ca
		dot += ca * fb[tok]
	}
	for _, cb := range fb {
		normB += cb * cb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp01(dot / math.Sqrt(normA*normB))
}

func termFrequency(tokens []string) map[string]float64 {
	freq := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	return freq
}
