// Package engine maps free-form job titles to the closest canonical title.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hazyhaar/titlematch/pkg/metric"
	"github.com/hazyhaar/titlematch/pkg/tokenize"
)

// DefaultThreshold is the minimum overall score a title needs to be returned.
const DefaultThreshold = 0.75

// ErrEmptyCatalog is returned when the provider lists no usable titles.
var ErrEmptyCatalog = errors.New("catalog has no titles")

// Provider supplies the catalog an Engine matches against.
type Provider interface {
	// IgnorablePrefixes lists tokens dropped before comparison (e.g. "senior").
	IgnorablePrefixes() ([]string, error)
	// CanonicalTitles lists the match targets. Order breaks score ties.
	CanonicalTitles() ([]string, error)
}

// Title is a canonical title with its tokens, computed once.
type Title struct {
	Display string
	Tokens  []string
}

// MatchResult is the selected title and its overall score.
type MatchResult struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Candidate is one scored title with the per-metric scores behind it.
type Candidate struct {
	Title     string             `json:"title"`
	Score     float64            `json:"score"`
	Breakdown map[string]float64 `json:"breakdown"`
	Accepted  bool               `json:"accepted"`
}

// Engine is immutable after New and safe for concurrent use.
type Engine struct {
	tokenizer *tokenize.Tokenizer
	metrics   *metric.Set
	titles    []Title
	threshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(t float64) Option {
	return func(e *Engine) { e.threshold = t }
}

// New tokenizes every canonical title of p once and returns a ready Engine.
func New(p Provider, metrics *metric.Set, opts ...Option) (*Engine, error) {
	if p == nil {
		return nil, errors.New("engine: nil provider")
	}
	if metrics == nil || metrics.Len() == 0 {
		return nil, fmt.Errorf("engine: %w: no metrics", metric.ErrInvalidConfig)
	}

	e := &Engine{metrics: metrics, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(e)
	}
	if !(e.threshold >= 0 && e.threshold <= 1) {
		return nil, fmt.Errorf("engine: threshold must be between 0.0 and 1.0, got %v", e.threshold)
	}

	prefixes, err := p.IgnorablePrefixes()
	if err != nil {
		return nil, fmt.Errorf("engine: list prefixes: %w", err)
	}
	display, err := p.CanonicalTitles()
	if err != nil {
		return nil, fmt.Errorf("engine: list titles: %w", err)
	}

	e.tokenizer = tokenize.New(prefixes)
	e.titles = make([]Title, 0, len(display))
	for _, d := range display {
		if strings.TrimSpace(d) == "" {
			continue
		}
		e.titles = append(e.titles, Title{
			Display: d,
			Tokens:  metric.Clean(e.tokenizer.Preprocess(d)),
		})
	}
	if len(e.titles) == 0 {
		return nil, fmt.Errorf("engine: %w", ErrEmptyCatalog)
	}
	return e, nil
}

// Normalize returns the best matching canonical title, or "" when no title
// reaches the threshold.
func (e *Engine) Normalize(input string) string {
	m, ok := e.NormalizeDetailed(input)
	if !ok {
		return ""
	}
	return m.Title
}

// NormalizeDetailed returns the best matching title with its overall score.
// Exact ties go to the title listed first in the catalog.
func (e *Engine) NormalizeDetailed(input string) (MatchResult, bool) {
	tokens := e.tokens(input)

	var best MatchResult
	found := false
	for _, t := range e.titles {
		score := e.metrics.Score(tokens, t.Tokens)
		if score < e.threshold {
			continue
		}
		if !found || score > best.Score {
			best = MatchResult{Title: t.Display, Score: score}
			found = true
		}
	}
	return best, found
}

// Rank scores every title against input, best first. Titles with equal scores
// keep catalog order. A limit <= 0 returns every title.
func (e *Engine) Rank(input string, limit int) []Candidate {
	tokens := e.tokens(input)

	out := make([]Candidate, 0, len(e.titles))
	for _, t := range e.titles {
		parts, score := e.metrics.Breakdown(tokens, t.Tokens)
		out = append(out, Candidate{
			Title:     t.Display,
			Score:     score,
			Breakdown: parts,
			Accepted:  score >= e.threshold,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Tokens returns the tokens input is compared with.
func (e *Engine) Tokens(input string) []string {
	return e.tokens(input)
}

// Titles returns the canonical display titles in catalog order.
func (e *Engine) Titles() []string {
	out := make([]string, len(e.titles))
	for i, t := range e.titles {
		out[i] = t.Display
	}
	return out
}

// Prefixes returns the ignorable prefixes, sorted.
func (e *Engine) Prefixes() []string {
	return e.tokenizer.Prefixes()
}

// Threshold returns the minimum accepted overall score.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

func (e *Engine) tokens(input string) []string {
	return metric.Clean(e.tokenizer.Preprocess(input))
}
