package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenDB_CreatesTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("db file not created: %v", err)
	}
	titles, err := db.CanonicalTitles()
	if err != nil {
		t.Fatalf("CanonicalTitles: %v", err)
	}
	if len(titles) != 0 {
		t.Errorf("expected empty catalog, got %v", titles)
	}
}

func TestDB_SeedKeepsOrder(t *testing.T) {
	db := tempDB(t)
	if err := db.Seed(Builtin()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Seeding again must not duplicate or reorder.
	if err := db.Seed(&File{ID: "more", Titles: []string{"Accountant", "Data analyst"}, Prefixes: []string{"lead"}}); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	titles, err := db.CanonicalTitles()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Software engineer", "Accountant", "Data analyst"}; !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
	prefixes, err := db.IgnorablePrefixes()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"junior", "lead", "principal", "senior"}; !reflect.DeepEqual(prefixes, want) {
		t.Errorf("prefixes = %v, want %v", prefixes, want)
	}
}

func TestDB_AddRemove(t *testing.T) {
	db := tempDB(t)

	if err := db.AddTitle("Accountant"); err != nil {
		t.Fatalf("AddTitle: %v", err)
	}
	if err := db.AddTitle(" Software engineer "); err != nil {
		t.Fatalf("AddTitle: %v", err)
	}
	if err := db.AddTitle("accountant"); err == nil {
		t.Error("expected error for duplicate title")
	}
	if err := db.AddTitle("  "); err == nil {
		t.Error("expected error for empty title")
	}
	if err := db.AddPrefix(" SENIOR "); err != nil {
		t.Fatalf("AddPrefix: %v", err)
	}
	if err := db.AddPrefix("senior"); err != nil {
		t.Fatalf("AddPrefix twice: %v", err)
	}

	f, err := db.Snapshot("db")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if want := []string{"Accountant", "Software engineer"}; !reflect.DeepEqual(f.Titles, want) {
		t.Errorf("titles = %v, want %v", f.Titles, want)
	}
	if want := []string{"senior"}; !reflect.DeepEqual(f.Prefixes, want) {
		t.Errorf("prefixes = %v, want %v", f.Prefixes, want)
	}

	if err := db.RemoveTitle("Accountant"); err != nil {
		t.Fatalf("RemoveTitle: %v", err)
	}
	if err := db.RemoveTitle("Accountant"); err == nil {
		t.Error("expected error removing a missing title")
	}
	if err := db.RemovePrefix("Senior"); err != nil {
		t.Fatalf("RemovePrefix: %v", err)
	}
	if err := db.RemovePrefix("senior"); err == nil {
		t.Error("expected error removing a missing prefix")
	}

	titles, _ := db.CanonicalTitles()
	if want := []string{"Software engineer"}; !reflect.DeepEqual(titles, want) {
		t.Errorf("titles = %v, want %v", titles, want)
	}
}

func TestDB_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := OpenDB(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Seed(Builtin()); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = OpenDB(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	titles, _ := db.CanonicalTitles()
	if len(titles) != 2 {
		t.Errorf("titles after reopen = %v", titles)
	}
}
