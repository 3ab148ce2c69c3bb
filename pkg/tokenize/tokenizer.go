// Package tokenize turns free-form title text into normalized match tokens.
package tokenize

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks from already decomposed text.
var stripMarks = runes.Remove(runes.In(unicode.M))

// Tokenizer splits, cleans and filters text into unique tokens.
// It is read-only after construction and safe for concurrent use.
type Tokenizer struct {
	prefixes map[string]struct{}
}

// New creates a tokenizer that drops the given ignorable prefixes.
// Prefixes are compared case-insensitively.
func New(prefixes []string) *Tokenizer {
	set := make(map[string]struct{}, len(prefixes))
	for _, p := range prefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		set[p] = struct{}{}
	}
	return &Tokenizer{prefixes: set}
}

// Preprocess returns the ordered, deduplicated tokens of text.
// Blank input yields no tokens.
//
// Separators are whitespace and , / ; : ' " ( ) [ ] { } ! ? @ _ -
// while '+', '#' and '.' stay inside tokens so "c++", "c#" and ".net" survive.
func (t *Tokenizer) Preprocess(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	decomposed := strings.TrimSpace(strings.ToLower(norm.NFD.String(text)))
	fragments := strings.FieldsFunc(decomposed, isSeparator)

	tokens := make([]string, 0, len(fragments))
	seen := make(map[string]struct{}, len(fragments))
	for _, f := range fragments {
		token := keepTokenRunes(removeMarks(f))
		if token == "" || t.isPrefix(token) {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

// Prefixes returns the configured ignorable prefixes in sorted order.
func (t *Tokenizer) Prefixes() []string {
	out := make([]string, 0, len(t.prefixes))
	for p := range t.prefixes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (t *Tokenizer) isPrefix(token string) bool {
	_, ok := t.prefixes[token]
	return ok
}

func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case ',', '/', ';', ':', '\'', '"', '(', ')', '[', ']', '{', '}', '!', '?', '@', '_', '-':
		return true
	}
	return false
}

// removeMarks strips accents, e.g. "résumé" -> "resume".
func removeMarks(s string) string {
	result, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return result
}

// keepTokenRunes drops everything outside [a-z0-9+#.].
func keepTokenRunes(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#', r == '.':
			return r
		}
		return -1
	}, s)
}
