package graph

import (
	"fmt"
	"sort"
)

var allKinds = []EdgeKind{Defines, Calls, Imports, Inherits, Implements, References}

// FindCallers returns the element IDs of every node with a Calls edge into id.
func (g *Graph) FindCallers(id string) ([]string, error) {
	return g.neighborElementIDs(id, Calls, false)
}

// FindCallees returns the element IDs id calls.
func (g *Graph) FindCallees(id string) ([]string, error) {
	return g.neighborElementIDs(id, Calls, true)
}

// GetDependencies returns the files fileID imports.
func (g *Graph) GetDependencies(fileID string) ([]string, error) {
	return g.neighborElementIDs(fileID, Imports, true)
}

// GetDependents returns the files that import fileID.
func (g *Graph) GetDependents(fileID string) ([]string, error) {
	return g.neighborElementIDs(fileID, Imports, false)
}

// GetSubclasses returns element IDs that inherit from or implement id.
func (g *Graph) GetSubclasses(id string) ([]string, error) {
	return g.neighborElementIDsAny(id, []EdgeKind{Inherits, Implements}, false)
}

// GetSuperclasses returns element IDs id inherits from or implements.
func (g *Graph) GetSuperclasses(id string) ([]string, error) {
	return g.neighborElementIDsAny(id, []EdgeKind{Inherits, Implements}, true)
}

func (g *Graph) neighborElementIDs(id string, kind EdgeKind, outbound bool) ([]string, error) {
	return g.neighborElementIDsAny(id, []EdgeKind{kind}, outbound)
}

func (g *Graph) neighborElementIDsAny(id string, kinds []EdgeKind, outbound bool) ([]string, error) {
	n, err := g.FindNodeByElementID(id)
	if err != nil {
		return nil, fmt.Errorf("graph: neighbors: %w", err)
	}
	if n == nil {
		return nil, nil
	}
	var handles []int64
	if outbound {
		handles, err = g.SuccessorsAny(n.Handle, kinds)
	} else {
		handles, err = g.PredecessorsAny(n.Handle, kinds)
	}
	if err != nil {
		return nil, err
	}
	return g.handlesToSortedElementIDs(handles)
}

func (g *Graph) handlesToSortedElementIDs(handles []int64) ([]string, error) {
	ids := make([]string, 0, len(handles))
	for _, h := range handles {
		node, err := g.FindNodeByHandle(h)
		if err != nil {
			return nil, err
		}
		if node == nil {
			continue
		}
		ids = append(ids, node.ElementID)
	}
	sort.Strings(ids)
	return ids, nil
}

// GetRelated returns the set of element IDs reachable from id in at most
// hops steps, following edges of the allowed kinds (default: all) in either
// direction, excluding id itself. Ordered ascending by element ID.
func (g *Graph) GetRelated(id string, hops int, kinds []EdgeKind) ([]string, error) {
	start, err := g.FindNodeByElementID(id)
	if err != nil {
		return nil, fmt.Errorf("graph: get related: %w", err)
	}
	if start == nil || hops <= 0 {
		return nil, nil
	}
	if len(kinds) == 0 {
		kinds = allKinds
	}

	visited := map[int64]bool{start.Handle: true}
	frontier := []int64{start.Handle}
	var reached []int64

	for depth := 0; depth < hops && len(frontier) > 0; depth++ {
		var next []int64
		for _, h := range frontier {
			succ, err := g.SuccessorsAny(h, kinds)
			if err != nil {
				return nil, err
			}
			pred, err := g.PredecessorsAny(h, kinds)
			if err != nil {
				return nil, err
			}
			for _, s := range append(succ, pred...) {
				if !visited[s] {
					visited[s] = true
					reached = append(reached, s)
					next = append(next, s)
				}
			}
		}
		frontier = next
	}

	return g.handlesToSortedElementIDs(reached)
}

// FindPath returns the shortest path (by edge count, any edge kind) from
// src to dst as a sequence of element IDs including both endpoints, capped
// at maxDepth hops. Among equal-length shortest paths it returns the one
// whose element-ID sequence is lexicographically smallest. Returns an
// empty slice if no path exists within maxDepth.
func (g *Graph) FindPath(src, dst string, maxDepth int) ([]string, error) {
	srcNode, err := g.FindNodeByElementID(src)
	if err != nil {
		return nil, fmt.Errorf("graph: find path: %w", err)
	}
	dstNode, err := g.FindNodeByElementID(dst)
	if err != nil {
		return nil, fmt.Errorf("graph: find path: %w", err)
	}
	if srcNode == nil || dstNode == nil {
		return nil, nil
	}
	if srcNode.Handle == dstNode.Handle {
		return []string{src}, nil
	}

	dist, err := g.reverseDistances(dstNode.Handle, maxDepth)
	if err != nil {
		return nil, err
	}
	d, ok := dist[srcNode.Handle]
	if !ok || d > maxDepth {
		return nil, nil
	}

	path := []string{srcNode.ElementID}
	cur := srcNode.Handle
	curDist := d
	for cur != dstNode.Handle {
		succ, err := g.SuccessorsAny(cur, allKinds)
		if err != nil {
			return nil, err
		}
		type cand struct {
			handle int64
			id     string
		}
		var cands []cand
		for _, s := range succ {
			sd, ok := dist[s]
			if !ok || sd != curDist-1 {
				continue
			}
			node, err := g.FindNodeByHandle(s)
			if err != nil {
				return nil, err
			}
			if node == nil {
				continue
			}
			cands = append(cands, cand{handle: s, id: node.ElementID})
		}
		if len(cands) == 0 {
			return nil, nil
		}
		sort.Slice(cands, func(i, j int) bool { return cands[i].id < cands[j].id })
		best := cands[0]
		path = append(path, best.id)
		cur = best.handle
		curDist--
	}
	return path, nil
}

// reverseDistances runs a BFS from dst following edges backwards (any
// kind), returning the hop distance from every reachable node to dst,
// capped at maxDepth.
func (g *Graph) reverseDistances(dst int64, maxDepth int) (map[int64]int, error) {
	dist := map[int64]int{dst: 0}
	frontier := []int64{dst}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []int64
		for _, h := range frontier {
			preds, err := g.PredecessorsAny(h, allKinds)
			if err != nil {
				return nil, err
			}
			for _, p := range preds {
				if _, seen := dist[p]; !seen {
					dist[p] = depth + 1
					next = append(next, p)
				}
			}
		}
		frontier = next
	}
	return dist, nil
}

// GetSource returns the stored snippet text for a node.
func (g *Graph) GetSource(id string) (string, error) {
	n, err := g.FindNodeByElementID(id)
	if err != nil {
		return "", fmt.Errorf("graph: get source: %w", err)
	}
	if n == nil {
		return "", fmt.Errorf("graph: get source: no such element %q", id)
	}
	return n.Snippet, nil
}

// ListFileElementIDs returns the element IDs of every File node, ascending.
func (g *Graph) ListFileElementIDs() ([]string, error) {
	rows, err := g.q.Query(`SELECT element_id FROM nodes WHERE kind='File' ORDER BY element_id`)
	if err != nil {
		return nil, fmt.Errorf("graph: list file ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Stats summarizes graph size.
type Stats struct {
	NodeCount int
	EdgeCount int
	FileCount int
	ByKind    map[string]int
}

// Stats computes aggregate counts over the graph.
func (g *Graph) Stats() (*Stats, error) {
	st := &Stats{ByKind: map[string]int{}}

	if err := g.q.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&st.NodeCount); err != nil {
		return nil, fmt.Errorf("graph: stats node count: %w", err)
	}
	edgeCount, err := g.CountEdges("")
	if err != nil {
		return nil, err
	}
	st.EdgeCount = edgeCount
	if err := g.q.QueryRow(`SELECT COUNT(*) FROM nodes WHERE kind='File'`).Scan(&st.FileCount); err != nil {
		return nil, fmt.Errorf("graph: stats file count: %w", err)
	}

	rows, err := g.q.Query(`SELECT kind, COUNT(*) FROM nodes GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("graph: stats by kind: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		st.ByKind[kind] = n
	}
	return st, rows.Err()
}
