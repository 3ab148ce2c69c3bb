// Package metric scores the similarity of two token sequences.
//
// Every Metric returns a value in [0,1] and 0 when either side is empty.
// Metrics are not required to be symmetric: callers pass query tokens first.
package metric

import (
	"fmt"
	"strings"
)

// Metric compares two token sequences.
type Metric interface {
	// Name identifies the metric in configuration and score breakdowns.
	Name() string
	// Score returns the similarity of a to b in [0,1].
	Score(a, b []string) float64
}

// Metric names understood by ByName.
const (
	NameCosine      = "cosine"
	NameJaroWinkler = "jaro_winkler"
	NameLevenshtein = "levenshtein"
)

// ByName returns the metric registered under name.
func ByName(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameCosine:
		return Cosine{}, nil
	case NameJaroWinkler, "jarowinkler", "fuzzy":
		return JaroWinkler{}, nil
	case NameLevenshtein:
		return Levenshtein{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidConfig, name)
	}
}

// Clean drops blank tokens. A nil slice is treated as empty.
// The result shares no memory with tokens.
func Clean(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Compare cleans both sequences and scores them with m.
func Compare(m Metric, a, b []string) float64 {
	return m.Score(Clean(a), Clean(b))
}

func clamp01(v float64) float64 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
