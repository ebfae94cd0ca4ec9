package snapshot

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "source.db")
	db, err := sql.Open("sqlite", srcPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE nodes (id INTEGER PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO nodes (name) VALUES ('foo')`); err != nil {
		t.Fatal(err)
	}

	snapPath := filepath.Join(dir, "snap.db")
	if err := Save(db, snapPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(snapPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer loaded.Close()

	var name string
	if err := loaded.QueryRow(`SELECT name FROM nodes WHERE id=1`).Scan(&name); err != nil {
		t.Fatalf("query restored snapshot: %v", err)
	}
	if name != "foo" {
		t.Fatalf("got name %q, want foo", name)
	}
}

func TestLoadRejectsMismatchedVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "old.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE snapshot_meta (key TEXT PRIMARY KEY, value TEXT)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO snapshot_meta (key, value) VALUES ('format_version', '999')`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := Load(path); err == nil {
		t.Fatal("expected version mismatch error")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
