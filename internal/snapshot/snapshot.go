// Package snapshot serializes and loads opaque, versioned graph snapshots
// using SQLite's VACUUM INTO, so a snapshot is just a self-contained
// database file rather than a bespoke binary format.
package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// formatVersion is bumped whenever the nodes/edges schema changes in a way
// that would make an older snapshot unreadable.
const formatVersion = 1

// ErrVersionMismatch wraps a Load failure caused by a snapshot stamped with
// a format version this build doesn't understand, as opposed to a missing
// or corrupt file.
var ErrVersionMismatch = errors.New("snapshot: version mismatch")

// Save writes a snapshot of the database behind db to path via VACUUM INTO,
// then stamps it with the current format version.
func Save(db *sql.DB, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("snapshot: clear existing file: %w", err)
	}
	if _, err := db.Exec(`VACUUM INTO ?`, path); err != nil {
		return fmt.Errorf("snapshot: vacuum into %s: %w", path, err)
	}

	snap, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("snapshot: reopen for stamping: %w", err)
	}
	defer snap.Close()
	if _, err := snap.Exec(`CREATE TABLE IF NOT EXISTS snapshot_meta (key TEXT PRIMARY KEY, value TEXT)`); err != nil {
		return fmt.Errorf("snapshot: create meta table: %w", err)
	}
	if _, err := snap.Exec(`INSERT OR REPLACE INTO snapshot_meta (key, value) VALUES ('format_version', ?)`, fmt.Sprint(formatVersion)); err != nil {
		return fmt.Errorf("snapshot: stamp version: %w", err)
	}
	return nil
}

// Load opens a snapshot file and verifies its format version matches what
// this build understands, returning the raw *sql.DB for the caller to wrap
// in a *graph.Graph.
func Load(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", path, err)
	}

	var version int
	err = db.QueryRow(`SELECT value FROM snapshot_meta WHERE key='format_version'`).Scan(&version)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: unreadable or unversioned snapshot %s: %w", path, err)
	}
	if version != formatVersion {
		db.Close()
		return nil, fmt.Errorf("%w: %s has format version %d, this build expects %d", ErrVersionMismatch, path, version, formatVersion)
	}
	return db, nil
}
