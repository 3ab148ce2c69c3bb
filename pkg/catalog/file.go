// Package catalog provides the canonical titles and ignorable prefixes an
// engine matches against, from built-in defaults, YAML/TOML files, a remote
// URL or a SQLite database.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is a catalog document.
//
//	id: tech-roles
//	version: "2026-10"
//	ignorable_prefixes: [senior, junior, lead, principal]
//	titles:
//	  - Software engineer
//	  - Accountant
type File struct {
	ID       string   `yaml:"id" toml:"id" json:"id"`
	Version  string   `yaml:"version" toml:"version" json:"version"`
	Source   string   `yaml:"source,omitempty" toml:"source,omitempty" json:"source,omitempty"`
	Prefixes []string `yaml:"ignorable_prefixes" toml:"ignorable_prefixes" json:"ignorable_prefixes"`
	Titles   []string `yaml:"titles" toml:"titles" json:"titles"`
}

// Builtin returns the default catalog.
func Builtin() *File {
	return &File{
		ID:       "builtin",
		Version:  "1",
		Prefixes: []string{"senior", "junior", "lead", "principal"},
		Titles:   []string{"Software engineer", "Accountant"},
	}
}

// IgnorablePrefixes implements engine.Provider.
func (f *File) IgnorablePrefixes() ([]string, error) {
	return append([]string(nil), f.Prefixes...), nil
}

// CanonicalTitles implements engine.Provider.
func (f *File) CanonicalTitles() ([]string, error) {
	return append([]string(nil), f.Titles...), nil
}

// Format is a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
	}
}

// LoadFile reads and validates a catalog file.
func LoadFile(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
	if err := f.normalize(); err != nil {
		return nil, err
	}
	return &f, nil
}

// normalize trims entries, drops blanks, lowercases prefixes and rejects
// titles listed twice.
func (f *File) normalize() error {
	if f.ID == "" {
		return fmt.Errorf("missing id")
	}

	prefixes := f.Prefixes[:0]
	for _, p := range f.Prefixes {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			prefixes = append(prefixes, p)
		}
	}
	f.Prefixes = prefixes

	seen := make(map[string]struct{}, len(f.Titles))
	titles := f.Titles[:0]
	for _, t := range f.Titles {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate title %q", t)
		}
		seen[key] = struct{}{}
		titles = append(titles, t)
	}
	if len(titles) == 0 {
		return fmt.Errorf("no titles")
	}
	f.Titles = titles
	return nil
}
