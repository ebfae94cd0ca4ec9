package core

import (
	"graphcore/internal/bm25"
	"graphcore/internal/graph"
)

func (h *RepoHandle) mustExist(id string) error {
	n, err := h.graph.FindNodeByElementID(id)
	if err != nil {
		return err
	}
	if n == nil {
		return &NotFoundError{ID: id}
	}
	return nil
}

// FindCallers returns the element IDs of every element with a Calls edge
// into id, sorted ascending.
func (h *RepoHandle) FindCallers(id string) (out []string, err error) {
	err = h.withReadLock(func() error {
		if e := h.mustExist(id); e != nil {
			return e
		}
		out, err = h.graph.FindCallers(id)
		return err
	})
	return out, err
}

// FindCallees returns the element IDs of every element id calls, sorted
// ascending.
func (h *RepoHandle) FindCallees(id string) (out []string, err error) {
	err = h.withReadLock(func() error {
		if e := h.mustExist(id); e != nil {
			return e
		}
		out, err = h.graph.FindCallees(id)
		return err
	})
	return out, err
}

// GetDependencies returns the element IDs of the files fileID imports.
func (h *RepoHandle) GetDependencies(fileID string) (out []string, err error) {
	err = h.withReadLock(func() error {
		if e := h.mustExist(fileID); e != nil {
			return e
		}
		out, err = h.graph.GetDependencies(fileID)
		return err
	})
	return out, err
}

// GetDependents returns the element IDs of the files that import fileID.
func (h *RepoHandle) GetDependents(fileID string) (out []string, err error) {
	err = h.withReadLock(func() error {
		if e := h.mustExist(fileID); e != nil {
			return e
		}
		out, err = h.graph.GetDependents(fileID)
		return err
	})
	return out, err
}

// GetSubclasses returns the element IDs of types that Inherit or Implement id.
func (h *RepoHandle) GetSubclasses(id string) (out []string, err error) {
	err = h.withReadLock(func() error {
		if e := h.mustExist(id); e != nil {
			return e
		}
		out, err = h.graph.GetSubclasses(id)
		return err
	})
	return out, err
}

// GetSuperclasses returns the element IDs id Inherits from or Implements.
func (h *RepoHandle) GetSuperclasses(id string) (out []string, err error) {
	err = h.withReadLock(func() error {
		if e := h.mustExist(id); e != nil {
			return e
		}
		out, err = h.graph.GetSuperclasses(id)
		return err
	})
	return out, err
}

// GetRelated returns every element reachable from id within hops hops across
// the given edge kinds (all kinds if kinds is empty), sorted ascending.
func (h *RepoHandle) GetRelated(id string, hops int, kinds []graph.EdgeKind) (out []string, err error) {
	err = h.withReadLock(func() error {
		if e := h.mustExist(id); e != nil {
			return e
		}
		out, err = h.graph.GetRelated(id, hops, kinds)
		return err
	})
	return out, err
}

// FindPath returns the shortest sequence of element IDs from src to dst,
// within maxDepth hops, breaking ties by lexicographically-least sequence.
// Returns nil if no path exists within maxDepth.
func (h *RepoHandle) FindPath(src, dst string, maxDepth int) (out []string, err error) {
	err = h.withReadLock(func() error {
		if e := h.mustExist(src); e != nil {
			return e
		}
		if e := h.mustExist(dst); e != nil {
			return e
		}
		out, err = h.graph.FindPath(src, dst, maxDepth)
		return err
	})
	return out, err
}

// GetSource returns the source snippet recorded for id.
func (h *RepoHandle) GetSource(id string) (out string, err error) {
	err = h.withReadLock(func() error {
		if e := h.mustExist(id); e != nil {
			return e
		}
		out, err = h.graph.GetSource(id)
		return err
	})
	return out, err
}

// ListFiles returns the element IDs of every indexed File node, sorted
// ascending.
func (h *RepoHandle) ListFiles() (out []string, err error) {
	err = h.withReadLock(func() error {
		out, err = h.graph.ListFileElementIDs()
		return err
	})
	return out, err
}

// Search runs a BM25F keyword search over element name, qualified name, and
// source snippet, returning at most limit results ordered by score
// descending, then element ID ascending.
func (h *RepoHandle) Search(query string, limit int) (out []bm25.Result, err error) {
	err = h.withReadLock(func() error {
		out = h.search.Search(query, limit)
		return nil
	})
	return out, err
}

// Stats summarizes the indexed repository: node/edge/file counts, a
// per-kind breakdown, and any per-file parse errors collected during build.
func (h *RepoHandle) Stats() (out *Stats, err error) {
	err = h.withReadLock(func() error {
		gs, e := h.graph.Stats()
		if e != nil {
			return e
		}
		out = &Stats{
			NodeCount: gs.NodeCount,
			EdgeCount: gs.EdgeCount,
			FileCount: gs.FileCount,
			ByKind:    gs.ByKind,
			Errors:    append([]string(nil), h.errors...),
		}
		return nil
	})
	return out, err
}
