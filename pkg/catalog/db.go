package catalog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DB is a catalog stored in SQLite. It implements engine.Provider.
type DB struct {
	db *sql.DB
}

// OpenDB opens (or creates) the SQLite database at path and ensures the
// catalog tables exist.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS canonical_titles (
		position   INTEGER PRIMARY KEY AUTOINCREMENT,
		title      TEXT NOT NULL UNIQUE COLLATE NOCASE,
		created_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS ignorable_prefixes (
		prefix     TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog tables: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Seed inserts the prefixes and titles of f. Existing rows are left
// untouched, so titles keep their original position.
func (d *DB) Seed(f *File) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("seed %s: %w", f.ID, err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, p := range f.Prefixes {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO ignorable_prefixes (prefix, created_at) VALUES (?, ?)`, p, now); err != nil {
			return fmt.Errorf("seed prefix %q: %w", p, err)
		}
	}
	for _, t := range f.Titles {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO canonical_titles (title, created_at) VALUES (?, ?)`, t, now); err != nil {
			return fmt.Errorf("seed title %q: %w", t, err)
		}
	}
	return tx.Commit()
}

// AddTitle appends a canonical title at the end of the catalog.
func (d *DB) AddTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("add title: empty title")
	}
	if _, err := d.db.Exec(`INSERT INTO canonical_titles (title, created_at) VALUES (?, ?)`, title, time.Now().Unix()); err != nil {
		return fmt.Errorf("add title %q: %w", title, err)
	}
	return nil
}

// RemoveTitle deletes a canonical title.
func (d *DB) RemoveTitle(title string) error {
	res, err := d.db.Exec(`DELETE FROM canonical_titles WHERE title = ?`, strings.TrimSpace(title))
	if err != nil {
		return fmt.Errorf("remove title %q: %w", title, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("title %q not found", title)
	}
	return nil
}

// AddPrefix adds an ignorable prefix. Adding an existing prefix is a no-op.
func (d *DB) AddPrefix(prefix string) error {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return fmt.Errorf("add prefix: empty prefix")
	}
	if _, err := d.db.Exec(`INSERT OR IGNORE INTO ignorable_prefixes (prefix, created_at) VALUES (?, ?)`, prefix, time.Now().Unix()); err != nil {
		return fmt.Errorf("add prefix %q: %w", prefix, err)
	}
	return nil
}

// RemovePrefix deletes an ignorable prefix.
func (d *DB) RemovePrefix(prefix string) error {
	res, err := d.db.Exec(`DELETE FROM ignorable_prefixes WHERE prefix = ?`, strings.ToLower(strings.TrimSpace(prefix)))
	if err != nil {
		return fmt.Errorf("remove prefix %q: %w", prefix, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("prefix %q not found", prefix)
	}
	return nil
}

// CanonicalTitles returns the titles in insertion order.
func (d *DB) CanonicalTitles() ([]string, error) {
	return d.column(`SELECT title FROM canonical_titles ORDER BY position`)
}

// IgnorablePrefixes returns the prefixes in alphabetical order.
func (d *DB) IgnorablePrefixes() ([]string, error) {
	return d.column(`SELECT prefix FROM ignorable_prefixes ORDER BY prefix`)
}

// Snapshot reads the whole catalog into a File.
func (d *DB) Snapshot(id string) (*File, error) {
	prefixes, err := d.IgnorablePrefixes()
	if err != nil {
		return nil, err
	}
	titles, err := d.CanonicalTitles()
	if err != nil {
		return nil, err
	}
	return &File{ID: id, Prefixes: prefixes, Titles: titles}, nil
}

func (d *DB) column(query string) ([]string, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
