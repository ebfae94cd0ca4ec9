// Package graph implements the Repository Graph: a SQLite-backed stable
// directed multigraph of code elements and their relationships. SQLite row
// IDs serve as the stable node handles the component design calls for; a
// unique element_id column is the side index from CodeElement ID to node
// handle. Transactions give the single-writer/many-reader discipline the
// engine's concurrency model requires, and VACUUM INTO gives the opaque
// snapshot format for free.
package graph

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Querier abstracts *sql.DB and *sql.Tx so Graph methods work in either.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Graph wraps a SQLite connection holding one project's nodes and edges.
type Graph struct {
	db *sql.DB
	q  Querier
}

// Node is a GraphNode: one-to-one with a CodeElement.
type Node struct {
	Handle        int64
	ElementID     string
	Kind          string
	Name          string
	QualifiedName string
	FilePath      string
	Language      string
	StartByte     uint
	EndByte       uint
	StartLine     int
	EndLine       int
	Snippet       string
	IsExported    bool
	Properties    map[string]any
}

// EdgeKind enumerates the relationship labels a GraphEdge may carry.
type EdgeKind string

const (
	Defines    EdgeKind = "Defines"
	Calls      EdgeKind = "Calls"
	Imports    EdgeKind = "Imports"
	Inherits   EdgeKind = "Inherits"
	Implements EdgeKind = "Implements"
	References EdgeKind = "References"
)

// Open opens (creating if needed) a SQLite-backed graph at path. Pass
// ":memory:" for an ephemeral, process-local graph.
func Open(path string) (*Graph, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	} else {
		dsn = ":memory:?_pragma=foreign_keys(ON)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("graph: open: %w", err)
	}
	g := &Graph{db: db, q: db}
	if err := g.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("graph: init schema: %w", err)
	}
	return g, nil
}

// FromDB wraps an already-open database connection as a Graph, for a
// snapshot just restored via Load — the schema was already created by the
// VACUUM INTO that produced the snapshot, so no initSchema call is needed.
func FromDB(db *sql.DB) *Graph {
	return &Graph{db: db, q: db}
}

// Close closes the underlying database connection.
func (g *Graph) Close() error {
	return g.db.Close()
}

// DB returns the underlying *sql.DB, for snapshot export (VACUUM INTO) and
// similar operations that need the raw connection.
func (g *Graph) DB() *sql.DB {
	return g.db
}

// WithTransaction runs fn against a transaction-scoped Graph. All graph
// mutation during an update/build pass happens inside one transaction so
// readers never observe a partially-applied file update.
func (g *Graph) WithTransaction(fn func(tx *Graph) error) error {
	tx, err := g.db.Begin()
	if err != nil {
		return fmt.Errorf("graph: begin tx: %w", err)
	}
	txGraph := &Graph{db: g.db, q: tx}
	if err := fn(txGraph); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (g *Graph) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS nodes (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		element_id     TEXT NOT NULL UNIQUE,
		kind           TEXT NOT NULL,
		name           TEXT NOT NULL,
		qualified_name TEXT NOT NULL,
		file_path      TEXT NOT NULL DEFAULT '',
		language       TEXT NOT NULL DEFAULT '',
		start_byte     INTEGER NOT NULL DEFAULT 0,
		end_byte       INTEGER NOT NULL DEFAULT 0,
		start_line     INTEGER NOT NULL DEFAULT 0,
		end_line       INTEGER NOT NULL DEFAULT 0,
		snippet        TEXT NOT NULL DEFAULT '',
		is_exported    INTEGER NOT NULL DEFAULT 0,
		properties     TEXT NOT NULL DEFAULT '{}'
	);
	CREATE INDEX IF NOT EXISTS idx_nodes_kind ON nodes(kind);
	CREATE INDEX IF NOT EXISTS idx_nodes_name ON nodes(name);
	CREATE INDEX IF NOT EXISTS idx_nodes_file ON nodes(file_path);
	CREATE INDEX IF NOT EXISTS idx_nodes_qn ON nodes(qualified_name);

	CREATE TABLE IF NOT EXISTS edges (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		source_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
		target_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
		kind      TEXT NOT NULL,
		UNIQUE(source_id, target_id, kind)
	);
	CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_id, kind);
	CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_id, kind);
	CREATE INDEX IF NOT EXISTS idx_edges_kind ON edges(kind);
	`
	_, err := g.db.Exec(schema)
	return err
}

func marshalProps(props map[string]any) string {
	if len(props) == 0 {
		return "{}"
	}
	b, err := json.Marshal(props)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func unmarshalProps(data string) map[string]any {
	if data == "" {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return map[string]any{}
	}
	return m
}
