package metric

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidConfig is wrapped by every metric configuration error.
var ErrInvalidConfig = errors.New("invalid metric configuration")

// WeightRangeError reports a weight outside [0,1].
type WeightRangeError struct {
	Metric string
	Weight float64
}

func (e *WeightRangeError) Error() string {
	return fmt.Sprintf("metric %s: weight must be between 0.0 and 1.0: %s", e.Metric, formatWeight(e.Weight))
}

func (e *WeightRangeError) Unwrap() error { return ErrInvalidConfig }

// WeightSumError reports weights that do not add up to exactly 1.0.
type WeightSumError struct {
	Sum float64
}

func (e *WeightSumError) Error() string {
	return "metric weights must add up to exactly 1.0, current total is " + formatWeight(e.Sum)
}

func (e *WeightSumError) Unwrap() error { return ErrInvalidConfig }

// Weighted pairs a metric with its share of the overall score.
type Weighted struct {
	Metric Metric
	Weight float64
}

// Set is an immutable, ordered list of weighted metrics whose weights sum to 1.0.
// It is safe for concurrent use.
type Set struct {
	entries []Weighted
}

// Builder accumulates weighted metrics for a Set.
// A Builder is not safe for concurrent use.
type Builder struct {
	entries []Weighted
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends m with the given weight. The weight must lie in [0,1] and each
// metric name may appear once.
func (b *Builder) Add(m Metric, weight float64) error {
	if m == nil {
		return fmt.Errorf("%w: nil metric", ErrInvalidConfig)
	}
	if !(weight >= 0 && weight <= 1) {
		return &WeightRangeError{Metric: m.Name(), Weight: weight}
	}
	for _, e := range b.entries {
		if e.Metric.Name() == m.Name() {
			return fmt.Errorf("%w: metric %s added twice", ErrInvalidConfig, m.Name())
		}
	}
	b.entries = append(b.entries, Weighted{Metric: m, Weight: weight})
	return nil
}

// Build validates that the weights add up to exactly 1.0 and returns the Set.
// The sum is compensated, so the order of Add calls does not matter, but no
// tolerance is applied to it.
func (b *Builder) Build() (*Set, error) {
	var sum compensatedSum
	for _, e := range b.entries {
		sum.add(e.Weight)
	}
	if total := sum.value(); total != 1.0 {
		return nil, &WeightSumError{Sum: total}
	}

	entries := make([]Weighted, len(b.entries))
	copy(entries, b.entries)
	return &Set{entries: entries}, nil
}

// NewSet builds a Set from pairs in one call.
func NewSet(pairs ...Weighted) (*Set, error) {
	b := NewBuilder()
	for _, p := range pairs {
		if err := b.Add(p.Metric, p.Weight); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// Entries returns a copy of the weighted metrics in insertion order.
func (s *Set) Entries() []Weighted {
	out := make([]Weighted, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of weighted metrics.
func (s *Set) Len() int { return len(s.entries) }

// Score returns the weighted sum of every metric's score of a against b.
// Both sequences must already be cleaned (see Clean).
func (s *Set) Score(a, b []string) float64 {
	var total compensatedSum
	for _, e := range s.entries {
		total.add(e.Metric.Score(a, b) * e.Weight)
	}
	return total.value()
}

// Breakdown returns each metric's unweighted score keyed by metric name,
// together with the weighted total.
func (s *Set) Breakdown(a, b []string) (map[string]float64, float64) {
	parts := make(map[string]float64, len(s.entries))
	var total compensatedSum
	for _, e := range s.entries {
		score := e.Metric.Score(a, b)
		parts[e.Metric.Name()] = score
		total.add(score * e.Weight)
	}
	return parts, total.value()
}

// compensatedSum is Neumaier's variant of Kahan summation. It carries the
// low-order bits lost by each addition, so 0.7+0.2+0.1 is exactly 1.0.
type compensatedSum struct {
	sum, c float64
}

func (k *compensatedSum) add(v float64) {
	t := k.sum + v
	if math.Abs(k.sum) >= math.Abs(v) {
		k.c += (k.sum - t) + v
	} else {
		k.c += (v - t) + k.sum
	}
	k.sum = t
}

func (k *compensatedSum) value() float64 {
	return k.sum + k.c
}

// formatWeight prints w rounded to nine decimals, so a float sum such as
// 0.3+0.6 reads as 0.9, and always with a fractional part.
func formatWeight(w float64) string {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return strconv.FormatFloat(w, 'f', -1, 64)
	}
	s := strconv.FormatFloat(math.Round(w*1e9)/1e9, 'f', -1, 64)
	if strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}
