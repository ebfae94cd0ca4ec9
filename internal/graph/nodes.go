package graph

import (
	"database/sql"
	"fmt"
)

const nodeColumns = `id, element_id, kind, name, qualified_name, file_path, language, start_byte, end_byte, start_line, end_line, snippet, is_exported, properties`

// UpsertNode inserts a node, or updates it in place if its element_id
// already exists — re-indexing an unchanged file reproduces the same
// element_id and so lands on the same row (and handle).
func (g *Graph) UpsertNode(n *Node) (int64, error) {
	_, err := g.q.Exec(`
		INSERT INTO nodes (element_id, kind, name, qualified_name, file_path, language, start_byte, end_byte, start_line, end_line, snippet, is_exported, properties)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(element_id) DO UPDATE SET
			kind=excluded.kind, name=excluded.name, qualified_name=excluded.qualified_name,
			file_path=excluded.file_path, language=excluded.language,
			start_byte=excluded.start_byte, end_byte=excluded.end_byte,
			start_line=excluded.start_line, end_line=excluded.end_line,
			snippet=excluded.snippet, is_exported=excluded.is_exported, properties=excluded.properties`,
		n.ElementID, n.Kind, n.Name, n.QualifiedName, n.FilePath, n.Language,
		n.StartByte, n.EndByte, n.StartLine, n.EndLine, n.Snippet, boolToInt(n.IsExported), marshalProps(n.Properties))
	if err != nil {
		return 0, fmt.Errorf("graph: upsert node: %w", err)
	}
	// LastInsertId is not updated when the upsert takes the DO UPDATE branch,
	// so the handle is always read back by element_id.
	var id int64
	if err := g.q.QueryRow(`SELECT id FROM nodes WHERE element_id=?`, n.ElementID).Scan(&id); err != nil {
		return 0, fmt.Errorf("graph: get node handle: %w", err)
	}
	return id, nil
}

// FindNodeByHandle looks up a node by its stable row handle.
func (g *Graph) FindNodeByHandle(handle int64) (*Node, error) {
	row := g.q.QueryRow(`SELECT `+nodeColumns+` FROM nodes WHERE id=?`, handle)
	return scanNode(row)
}

// FindNodeByElementID looks up a node by its CodeElement ID.
func (g *Graph) FindNodeByElementID(elementID string) (*Node, error) {
	row := g.q.QueryRow(`SELECT `+nodeColumns+` FROM nodes WHERE element_id=?`, elementID)
	return scanNode(row)
}

// FindNodeByQualifiedName looks up a node by its qualified name.
func (g *Graph) FindNodeByQualifiedName(qn string) (*Node, error) {
	row := g.q.QueryRow(`SELECT `+nodeColumns+` FROM nodes WHERE qualified_name=?`, qn)
	return scanNode(row)
}

// FindNodesByFile returns every node whose file_path matches.
func (g *Graph) FindNodesByFile(filePath string) ([]*Node, error) {
	rows, err := g.q.Query(`SELECT `+nodeColumns+` FROM nodes WHERE file_path=? ORDER BY element_id`, filePath)
	if err != nil {
		return nil, fmt.Errorf("graph: find nodes by file: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// FindNodesByKind returns every node of a given kind.
func (g *Graph) FindNodesByKind(kind string) ([]*Node, error) {
	rows, err := g.q.Query(`SELECT `+nodeColumns+` FROM nodes WHERE kind=? ORDER BY element_id`, kind)
	if err != nil {
		return nil, fmt.Errorf("graph: find nodes by kind: %w", err)
	}
	defer rows.Close()
	return scanNodes(rows)
}

// DeleteNodesByFile removes every node whose file_path matches, cascading
// to incident edges via the foreign key ON DELETE CASCADE.
func (g *Graph) DeleteNodesByFile(filePath string) error {
	_, err := g.q.Exec(`DELETE FROM nodes WHERE file_path=?`, filePath)
	if err != nil {
		return fmt.Errorf("graph: delete nodes by file: %w", err)
	}
	return nil
}

// ListFiles returns every distinct file_path that has a File node.
func (g *Graph) ListFiles() ([]string, error) {
	rows, err := g.q.Query(`SELECT file_path FROM nodes WHERE kind='File' ORDER BY file_path`)
	if err != nil {
		return nil, fmt.Errorf("graph: list files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func scanNode(row *sql.Row) (*Node, error) {
	var n Node
	var props string
	var exported int
	err := row.Scan(&n.Handle, &n.ElementID, &n.Kind, &n.Name, &n.QualifiedName, &n.FilePath, &n.Language,
		&n.StartByte, &n.EndByte, &n.StartLine, &n.EndLine, &n.Snippet, &exported, &props)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("graph: scan node: %w", err)
	}
	n.IsExported = exported != 0
	n.Properties = unmarshalProps(props)
	return &n, nil
}

func scanNodes(rows *sql.Rows) ([]*Node, error) {
	var nodes []*Node
	for rows.Next() {
		var n Node
		var props string
		var exported int
		if err := rows.Scan(&n.Handle, &n.ElementID, &n.Kind, &n.Name, &n.QualifiedName, &n.FilePath, &n.Language,
			&n.StartByte, &n.EndByte, &n.StartLine, &n.EndLine, &n.Snippet, &exported, &props); err != nil {
			return nil, fmt.Errorf("graph: scan node: %w", err)
		}
		n.IsExported = exported != 0
		n.Properties = unmarshalProps(props)
		nodes = append(nodes, &n)
	}
	return nodes, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
