package core

import (
	"context"
	"os"
	"path/filepath"

	"graphcore/internal/extract"
	"graphcore/internal/graph"
	"graphcore/internal/lang"
	"graphcore/internal/walk"
)

// UpdateFile re-indexes one file after an edit: it removes the file's prior
// nodes, edges, BM25 documents, and Global Index entries, then re-parses and
// re-inserts it, then re-resolves cross-file edges for every indexed file so
// that callers elsewhere that newly resolve (or newly stop resolving)
// against this file's symbols land on a consistent graph. Pass newBytes nil
// to have the file re-read from disk.
func (h *RepoHandle) UpdateFile(ctx context.Context, relPath string, newBytes []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.checkBuilt(); err != nil {
		return err
	}
	if err := wrapCancel(ctx); err != nil {
		return err
	}

	source := newBytes
	if source == nil {
		b, err := os.ReadFile(filepath.Join(h.root, relPath))
		if err != nil {
			if os.IsNotExist(err) {
				source = nil
			} else {
				return &IoError{Path: relPath, Message: err.Error()}
			}
		} else {
			source = b
		}
	}

	return h.graph.WithTransaction(func(tx *graph.Graph) error {
		origGraph := h.graph
		h.graph = tx
		defer func() { h.graph = origGraph }()

		h.removeFileLocked(relPath)

		if source == nil {
			return nil
		}
		if err := h.parseAndInsert(relPath, source); err != nil {
			return err
		}
		return h.resolveAllLocked()
	})
}

// RemoveFile deletes a file's nodes (cascading to incident edges), its BM25
// documents, and its Global Index entries, without re-resolving anything
// else — the graph is left consistent for every file except ones that had
// resolved against the removed file's symbols, which recover on their own
// next update.
func (h *RepoHandle) RemoveFile(ctx context.Context, relPath string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.checkBuilt(); err != nil {
		return err
	}
	if err := wrapCancel(ctx); err != nil {
		return err
	}
	return h.graph.WithTransaction(func(tx *graph.Graph) error {
		origGraph := h.graph
		h.graph = tx
		defer func() { h.graph = origGraph }()
		h.removeFileLocked(relPath)
		return nil
	})
}

// AddFile parses and inserts a file that isn't currently indexed (or
// re-inserts one that is, overwriting it), then re-resolves cross-file
// edges across the whole repository so that other files' previously
// unresolved references against this file's symbols pick it up.
func (h *RepoHandle) AddFile(ctx context.Context, relPath string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.checkBuilt(); err != nil {
		return err
	}
	if err := wrapCancel(ctx); err != nil {
		return err
	}
	source, err := os.ReadFile(filepath.Join(h.root, relPath))
	if err != nil {
		return &IoError{Path: relPath, Message: err.Error()}
	}
	return h.graph.WithTransaction(func(tx *graph.Graph) error {
		origGraph := h.graph
		h.graph = tx
		defer func() { h.graph = origGraph }()
		h.removeFileLocked(relPath)
		if err := h.parseAndInsert(relPath, source); err != nil {
			return err
		}
		return h.resolveAllLocked()
	})
}

// removeFileLocked performs steps (a)+(b) of an update: drop the file's
// nodes (and, via cascade, every edge touching them), its BM25 documents,
// its Global Index entries, and its cached facts. No-op if the file was
// never indexed. Caller must hold the writer lock and be inside the current
// graph transaction.
func (h *RepoHandle) removeFileLocked(relPath string) {
	if ff, ok := h.facts[relPath]; ok {
		for _, el := range ff.result.Elements {
			h.search.RemoveDocument(el.ID)
		}
		h.index.RemoveFile(relPath)
		delete(h.facts, relPath)
	} else if nodes, err := h.graph.FindNodesByFile(relPath); err == nil && len(nodes) > 0 {
		// A handle restored by Load has no cached facts for this file; its
		// documents and Global Index entries were rebuilt from these nodes.
		for _, n := range nodes {
			h.search.RemoveDocument(n.ElementID)
		}
		h.index.RemoveFile(relPath)
	}
	h.graph.DeleteNodesByFile(relPath)
}

// parseAndInsert parses source and folds it into the graph as a fresh file,
// per steps (c)+(d): Global Index entries, nodes, and Defines edges.
func (h *RepoHandle) parseAndInsert(relPath string, source []byte) error {
	language, ok := lang.ForPath(filepath.Ext(relPath))
	if !ok {
		return &UnsupportedLanguageError{Path: relPath}
	}
	result, err := extract.ParseFile(h.project, relPath, source, language)
	if err != nil {
		return &ParseError{Path: relPath, Message: err.Error()}
	}
	f := walk.File{Path: filepath.Join(h.root, relPath), RelPath: relPath, Language: language}
	return h.insertFileNodes(f, result)
}

// resolveAllLocked re-derives every resolved (non-Defines) edge across the
// whole repository. Re-resolution isn't tracked per reverse-dependency, so a
// single file's update simply recomputes everyone's Imports/Calls/
// Inherits/Implements edges from the current Global Index — correct and
// simple, at the cost of being O(files) per update rather than proportional
// to the change's actual blast radius.
func (h *RepoHandle) resolveAllLocked() error {
	for relPath := range h.facts {
		if err := h.graph.DeleteResolvedEdgesForFile(relPath); err != nil {
			return err
		}
	}
	for relPath := range h.facts {
		if err := h.resolveFileEdges(relPath); err != nil {
			return err
		}
	}
	return nil
}
