package metric

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed scores every pair with the same value and records its calls.
type fixed struct {
	name  string
	score float64
	calls int
}

func (f *fixed) Name() string { return f.name }

func (f *fixed) Score(a, b []string) float64 {
	f.calls++
	return f.score
}

func TestBuildValidWeights(t *testing.T) {
	m1 := &fixed{name: "m1"}
	m2 := &fixed{name: "m2"}

	b := NewBuilder()
	require.NoError(t, b.Add(m1, 0.4))
	require.NoError(t, b.Add(m2, 0.6))
	set, err := b.Build()
	require.NoError(t, err)

	entries := set.Entries()
	require.Len(t, entries, 2)
	assert.Same(t, m1, entries[0].Metric)
	assert.Equal(t, 0.4, entries[0].Weight)
	assert.Same(t, m2, entries[1].Metric)
	assert.Equal(t, 0.6, entries[1].Weight)
	assert.Equal(t, 2, set.Len())
}

func TestBuildSingleFullWeight(t *testing.T) {
	set, err := NewSet(Weighted{Metric: Cosine{}, Weight: 1.0})
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func TestBuildInvalidSum(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(Cosine{}, 0.3))
	require.NoError(t, b.Add(JaroWinkler{}, 0.6))

	_, err := b.Build()
	require.Error(t, err)

	var sumErr *WeightSumError
	require.True(t, errors.As(err, &sumErr))
	assert.InDelta(t, 0.9, sumErr.Sum, 1e-9)
	assert.Contains(t, err.Error(), "0.9")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestBuildNoMetrics(t *testing.T) {
	_, err := NewBuilder().Build()
	require.Error(t, err)

	var sumErr *WeightSumError
	require.True(t, errors.As(err, &sumErr))
	assert.Equal(t, 0.0, sumErr.Sum)
	assert.Contains(t, err.Error(), "0.0")
}

func TestAddWeightOutOfRange(t *testing.T) {
	for _, w := range []float64{-0.1, 1.1, math.NaN(), math.Inf(1)} {
		err := NewBuilder().Add(Cosine{}, w)
		require.Error(t, err, "weight %v", w)

		var rangeErr *WeightRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, "cosine", rangeErr.Metric)
		assert.Contains(t, err.Error(), "weight must be between 0.0 and 1.0")
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	}

	err := NewBuilder().Add(Cosine{}, -0.1)
	assert.Contains(t, err.Error(), "-0.1")
}

func TestAddBoundaryWeights(t *testing.T) {
	b := NewBuilder()
	assert.NoError(t, b.Add(Cosine{}, 0.0))
	assert.NoError(t, b.Add(JaroWinkler{}, 1.0))

	set, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
}

func TestAddNilMetric(t *testing.T) {
	err := NewBuilder().Add(nil, 0.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestRangeErrorDoesNotPoisonBuilder(t *testing.T) {
	b := NewBuilder()
	require.Error(t, b.Add(Cosine{}, 2))
	require.NoError(t, b.Add(Cosine{}, 1))

	_, err := b.Build()
	assert.NoError(t, err)
}

func TestSetIsImmutable(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(Cosine{}, 1.0))
	set, err := b.Build()
	require.NoError(t, err)

	// Later additions to the builder do not leak into the built set.
	require.NoError(t, b.Add(JaroWinkler{}, 0.5))
	assert.Equal(t, 1, set.Len())

	entries := set.Entries()
	entries[0].Weight = 0
	assert.Equal(t, 1.0, set.Entries()[0].Weight)
}

func TestSetScore(t *testing.T) {
	m1 := &fixed{name: "m1", score: 0.5}
	m2 := &fixed{name: "m2", score: 1.0}
	set, err := NewSet(Weighted{Metric: m1, Weight: 0.25}, Weighted{Metric: m2, Weight: 0.75})
	require.NoError(t, err)

	assert.Equal(t, 0.875, set.Score(toks("accountant"), toks("accountant")))
	assert.Equal(t, 1, m1.calls)
	assert.Equal(t, 1, m2.calls)

	parts, total := set.Breakdown(toks("a"), toks("b"))
	assert.Equal(t, map[string]float64{"m1": 0.5, "m2": 1.0}, parts)
	assert.Equal(t, 0.875, total)
}

func TestFormatWeight(t *testing.T) {
	a, b := 0.3, 0.6
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{a + b, "0.9"},
		{0.75, "0.75"},
		{-0.1, "-0.1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatWeight(tt.in), "formatWeight(%v)", tt.in)
	}
}

func TestBuildSumIgnoresOrder(t *testing.T) {
	named := func(ws ...float64) []Weighted {
		out := make([]Weighted, len(ws))
		for i, w := range ws {
			out[i] = Weighted{Metric: &fixed{name: fmt.Sprintf("m%d", i)}, Weight: w}
		}
		return out
	}
	tenths := make([]float64, 10)
	for i := range tenths {
		tenths[i] = 0.1
	}

	for _, ws := range [][]float64{
		{0.7, 0.2, 0.1},
		{0.1, 0.2, 0.7},
		{0.6, 0.3, 0.1},
		{0.1, 0.3, 0.6},
		tenths,
	} {
		set, err := NewSet(named(ws...)...)
		require.NoError(t, err, "weights %v", ws)
		assert.Equal(t, len(ws), set.Len())
	}

	_, err := NewSet(named(0.3, 0.6)...)
	var sumErr *WeightSumError
	require.True(t, errors.As(err, &sumErr))
	assert.Contains(t, err.Error(), "current total is 0.9")
}

func TestScoreSumIsCompensated(t *testing.T) {
	set, err := NewSet(
		Weighted{Metric: &fixed{name: "a", score: 1}, Weight: 0.7},
		Weighted{Metric: &fixed{name: "b", score: 1}, Weight: 0.2},
		Weighted{Metric: &fixed{name: "c", score: 1}, Weight: 0.1},
	)
	require.NoError(t, err)
	assert.Equal(t, 1.0, set.Score(toks("x"), toks("x")))

	_, total := set.Breakdown(toks("x"), toks("x"))
	assert.Equal(t, 1.0, total)
}

func TestAddRejectsDuplicateMetric(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add(Cosine{}, 0.5))
	err := b.Add(Cosine{}, 0.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "cosine added twice")
	assert.Equal(t, 1, len(b.entries))
}
