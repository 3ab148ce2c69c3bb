package metric

import (
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// Jaro-Winkler parameters: scores above the boost threshold get a bonus for
// up to prefixSize shared leading characters.
const (
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// JaroWinkler averages, over the tokens of a, the best Jaro-Winkler
// similarity against any token of b. It tolerates typos and partial tokens.
//
// Score is asymmetric when the sequences differ in length:
// ["software", "engineer"] vs ["engineer"] is not ["engineer"] vs ["software", "engineer"].
// See https://en.wikipedia.org/wiki/Jaro%E2%80%93Winkler_distance.
type JaroWinkler struct{}

func (JaroWinkler) Name() string { return NameJaroWinkler }

func (JaroWinkler) Score(a, b []string) float64 {
	return bestMatchAverage(a, b, jaroWinkler)
}

// Levenshtein averages, over the tokens of a, the best normalized edit
// similarity 1 - distance/max(len) against any token of b.
type Levenshtein struct{}

func (Levenshtein) Name() string { return NameLevenshtein }

func (Levenshtein) Score(a, b []string) float64 {
	return bestMatchAverage(a, b, editSimilarity)
}

func jaroWinkler(x, y string) float64 {
	if x == y {
		return 1
	}
	return smetrics.JaroWinkler(x, y, jwBoostThreshold, jwPrefixSize)
}

func editSimilarity(x, y string) float64 {
	if x == y {
		return 1
	}
	longest := max(len([]rune(x)), len([]rune(y)))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(x, y))/float64(longest)
}

// bestMatchAverage is the mean, over the tokens of a, of each token's best
// similarity against b.
func bestMatchAverage(a, b []string, sim func(x, y string) float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var total float64
	for _, x := range a {
		var best float64
		for _, y := range b {
			if s := clamp01(sim(x, y)); s > best {
				best = s
				if best == 1 {
					break
				}
			}
		}
		total += best
	}
	return clamp01(total / float64(len(a)))
}
