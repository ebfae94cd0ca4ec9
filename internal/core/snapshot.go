package core

import (
	"errors"
	"fmt"
	"os"

	"graphcore/internal/bm25"
	"graphcore/internal/fqn"
	"graphcore/internal/graph"
	"graphcore/internal/resolve"
	"graphcore/internal/snapshot"
)

// Snapshot serializes the current graph to an opaque, versioned blob via
// SQLite's VACUUM INTO. The Global Index and BM25 index aren't part of the
// blob — Load rebuilds both from the graph's persisted nodes, since every
// field they need (qualified name, kind, file path, byte offset, exported
// flag, snippet) already lives on a Node.
func (h *RepoHandle) Snapshot(tmpPath string) (data []byte, err error) {
	err = h.withReadLock(func() error {
		if e := snapshot.Save(h.graph.DB(), tmpPath); e != nil {
			return e
		}
		b, e := os.ReadFile(tmpPath)
		if e != nil {
			return &IoError{Path: tmpPath, Message: e.Error()}
		}
		data = b
		return nil
	})
	return data, err
}

// Load restores a RepoHandle from a snapshot blob previously produced by
// Snapshot. tmpPath is a scratch location the blob is written to before
// SQLite opens it. The handle's fact cache starts empty: queries work
// immediately against the restored graph, but the first UpdateFile or
// AddFile touching a given file re-parses it (and, per resolveAllLocked,
// only re-resolves edges for files already touched since the load — edges
// among untouched files are exactly as they were when the snapshot was
// taken, which is correct since nothing about them changed).
func Load(project, root, tmpPath string, data []byte) (*RepoHandle, error) {
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return nil, &IoError{Path: tmpPath, Message: err.Error()}
	}
	db, err := snapshot.Load(tmpPath)
	if err != nil {
		if errors.Is(err, snapshot.ErrVersionMismatch) {
			return nil, ErrSnapshotVersionMismatch
		}
		return nil, fmt.Errorf("core: load snapshot: %w", err)
	}

	g := graph.FromDB(db)
	h := New(project)
	h.root = root
	h.graph = g

	if err := h.rebuildIndexesFromGraph(); err != nil {
		g.Close()
		return nil, err
	}
	h.built = true
	return h, nil
}

// rebuildIndexesFromGraph reconstructs the Global Index and BM25 index from
// the nodes already present in the graph, grouping by file_path.
func (h *RepoHandle) rebuildIndexesFromGraph() error {
	files, err := h.graph.ListFiles()
	if err != nil {
		return err
	}

	byFile := map[string][]*graph.Node{}
	for _, relPath := range files {
		nodes, err := h.graph.FindNodesByFile(relPath)
		if err != nil {
			return err
		}
		byFile[relPath] = nodes
	}

	for relPath, nodes := range byFile {
		var symbols []resolve.Symbol
		exported := map[string]bool{}
		for _, n := range nodes {
			h.search.AddDocument(bm25.Document{ElementID: n.ElementID, Name: n.Name, QualifiedName: n.QualifiedName, Snippet: n.Snippet})
			if n.Kind == "File" || !symbolKinds[n.Kind] {
				continue
			}
			symbols = append(symbols, resolve.Symbol{
				ElementID: n.ElementID, QualifiedName: n.QualifiedName, Kind: n.Kind,
				FilePath: n.FilePath, ByteOffset: n.StartByte,
			})
			if n.IsExported {
				exported[n.QualifiedName] = true
			}
		}
		moduleQN := fqn.ModuleQN(h.project, relPath)
		folderQN := fqn.FolderQN(h.project, dirOf(relPath))
		h.index.AddFile(relPath, []string{moduleQN, folderQN}, symbols, exported)
	}
	return nil
}
