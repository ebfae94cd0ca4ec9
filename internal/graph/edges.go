package graph

import "fmt"

// InsertEdge adds an edge, deduping on (source, target, kind) — a function
// called twice from the same site still yields a single Calls edge.
func (g *Graph) InsertEdge(sourceHandle, targetHandle int64, kind EdgeKind) error {
	_, err := g.q.Exec(`
		INSERT INTO edges (source_id, target_id, kind) VALUES (?, ?, ?)
		ON CONFLICT(source_id, target_id, kind) DO NOTHING`,
		sourceHandle, targetHandle, string(kind))
	if err != nil {
		return fmt.Errorf("graph: insert edge: %w", err)
	}
	return nil
}

// Successors returns the handles reachable by one hop of kind from source.
func (g *Graph) Successors(source int64, kind EdgeKind) ([]int64, error) {
	rows, err := g.q.Query(`SELECT target_id FROM edges WHERE source_id=? AND kind=? ORDER BY target_id`, source, string(kind))
	if err != nil {
		return nil, fmt.Errorf("graph: successors: %w", err)
	}
	defer rows.Close()
	return scanHandles(rows)
}

// Predecessors returns the handles one hop of kind away that point at target.
func (g *Graph) Predecessors(target int64, kind EdgeKind) ([]int64, error) {
	rows, err := g.q.Query(`SELECT source_id FROM edges WHERE target_id=? AND kind=? ORDER BY source_id`, target, string(kind))
	if err != nil {
		return nil, fmt.Errorf("graph: predecessors: %w", err)
	}
	defer rows.Close()
	return scanHandles(rows)
}

// SuccessorsAny is like Successors but across any of the given kinds.
func (g *Graph) SuccessorsAny(source int64, kinds []EdgeKind) ([]int64, error) {
	return g.neighborsAny(source, kinds, "source_id", "target_id")
}

// PredecessorsAny is like Predecessors but across any of the given kinds.
func (g *Graph) PredecessorsAny(target int64, kinds []EdgeKind) ([]int64, error) {
	return g.neighborsAny(target, kinds, "target_id", "source_id")
}

func (g *Graph) neighborsAny(handle int64, kinds []EdgeKind, fixedCol, returnCol string) ([]int64, error) {
	if len(kinds) == 0 {
		kinds = []EdgeKind{Defines, Calls, Imports, Inherits, Implements, References}
	}
	placeholders := ""
	args := make([]any, 0, len(kinds)+1)
	args = append(args, handle)
	for i, k := range kinds {
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		args = append(args, string(k))
	}
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM edges WHERE %s=? AND kind IN (%s) ORDER BY %s`, returnCol, fixedCol, placeholders, returnCol)
	rows, err := g.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("graph: neighbors: %w", err)
	}
	defer rows.Close()
	return scanHandles(rows)
}

// EdgeEndpointHandles returns every (source, target) pair for an edge kind,
// in no particular order.
func (g *Graph) EdgeEndpointHandles(kind EdgeKind) ([][2]int64, error) {
	rows, err := g.q.Query(`SELECT source_id, target_id FROM edges WHERE kind=?`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("graph: edge endpoints: %w", err)
	}
	defer rows.Close()

	var out [][2]int64
	for rows.Next() {
		var s, t int64
		if err := rows.Scan(&s, &t); err != nil {
			return nil, err
		}
		out = append(out, [2]int64{s, t})
	}
	return out, rows.Err()
}

// DeleteResolvedEdgesForFile removes every non-Defines edge sourced from a
// node in filePath — the incremental updater calls this before re-resolving
// a file (or the files that depend on it), so a symbol's call/inheritance
// targets never survive after it stops referencing them.
func (g *Graph) DeleteResolvedEdgesForFile(filePath string) error {
	_, err := g.q.Exec(`
		DELETE FROM edges WHERE kind != 'Defines' AND source_id IN (
			SELECT id FROM nodes WHERE file_path = ?
		)`, filePath)
	if err != nil {
		return fmt.Errorf("graph: delete resolved edges for file: %w", err)
	}
	return nil
}

// CountEdges returns the total number of edges, optionally filtered by kind.
func (g *Graph) CountEdges(kind EdgeKind) (int, error) {
	var n int
	var err error
	if kind == "" {
		err = g.q.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&n)
	} else {
		err = g.q.QueryRow(`SELECT COUNT(*) FROM edges WHERE kind=?`, string(kind)).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("graph: count edges: %w", err)
	}
	return n, nil
}

func scanHandles(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]int64, error) {
	var out []int64
	for rows.Next() {
		var h int64
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
