package catalog

import (
	"context"
	"fmt"
	"io"
)

// Source kinds.
const (
	KindBuiltin = "builtin"
	KindFile    = "file"
	KindSQLite  = "sqlite"
	KindURL     = "url"
)

// Source says where a catalog lives.
type Source struct {
	Kind string `yaml:"kind" toml:"kind" json:"kind"`
	Path string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"`
	URL  string `yaml:"url,omitempty" toml:"url,omitempty" json:"url,omitempty"`
}

// Validate checks that the fields required by Kind are set and that no field
// Kind ignores is.
func (s Source) Validate() error {
	kind := s.Kind
	if kind == "" {
		kind = KindBuiltin
	}
	switch kind {
	case KindBuiltin, KindFile, KindSQLite, KindURL:
	default:
		return fmt.Errorf("unknown catalog kind %q", s.Kind)
	}

	usesPath := kind == KindFile || kind == KindSQLite
	switch {
	case usesPath && s.Path == "":
		return fmt.Errorf("catalog kind %s requires a path", kind)
	case !usesPath && s.Path != "":
		return fmt.Errorf("catalog kind %s does not use a path (got %q)", kind, s.Path)
	case kind == KindURL && s.URL == "":
		return fmt.Errorf("catalog kind url requires a url")
	case kind != KindURL && s.URL != "":
		return fmt.Errorf("catalog kind %s does not use a url (got %q)", kind, s.URL)
	}
	return nil
}

// Catalog is an opened catalog. Close releases the database for sqlite
// sources and is a no-op otherwise.
type Catalog interface {
	IgnorablePrefixes() ([]string, error)
	CanonicalTitles() ([]string, error)
	io.Closer
}

type static struct{ *File }

func (static) Close() error { return nil }

// Open opens the catalog described by s. An empty kind means builtin.
func Open(ctx context.Context, s Source) (Catalog, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Kind {
	case KindFile:
		f, err := LoadFile(s.Path)
		if err != nil {
			return nil, err
		}
		return static{f}, nil
	case KindSQLite:
		return OpenDB(s.Path)
	case KindURL:
		f, err := Fetch(ctx, s.URL)
		if err != nil {
			return nil, err
		}
		return static{f}, nil
	default:
		return static{Builtin()}, nil
	}
}
