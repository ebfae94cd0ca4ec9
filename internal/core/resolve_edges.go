package core

import (
	"fmt"

	"graphcore/internal/graph"
	"graphcore/internal/resolve"
)

// resolveFileEdges resolves Imports, Calls, Inherits, and Implements for
// one already-inserted file, per the build sequence's steps 3-5. It reads
// the cached facts (not the raw AST) so incremental updates can call it
// without re-parsing.
func (h *RepoHandle) resolveFileEdges(relPath string) error {
	ff, ok := h.facts[relPath]
	if !ok {
		return nil
	}

	fileNode, err := h.graph.FindNodeByElementID(fileElementID(ff))
	if err != nil {
		return err
	}

	ctx := h.buildCallerContext(ff)

	if fileNode != nil {
		for _, targetPath := range ctx.ImportedFiles {
			targetNode, err := h.graph.FindNodeByElementID(fileElementIDForPath(targetPath, h))
			if err != nil || targetNode == nil {
				continue
			}
			if err := h.graph.InsertEdge(fileNode.Handle, targetNode.Handle, graph.Imports); err != nil {
				return fmt.Errorf("core: insert imports edge: %w", err)
			}
		}
	}

	for _, call := range ff.result.Calls {
		if call.EnclosingID == "" {
			continue
		}
		targetID, ok := h.index.ResolveCall(call.Callee, ctx)
		if !ok {
			continue
		}
		if err := h.insertElementEdge(call.EnclosingID, targetID, graph.Calls); err != nil {
			return err
		}
	}

	for _, rel := range ff.result.Inheritance {
		subjectID, ok := ff.qnToID[rel.SubjectQN]
		if !ok {
			continue
		}
		targetID, ok := h.index.ResolveSuperclass(rel.SuperName, ctx)
		if !ok {
			continue
		}
		kind := graph.Inherits
		if rel.Relation == "implements" {
			kind = graph.Implements
		}
		if err := h.insertElementEdge(subjectID, targetID, kind); err != nil {
			return err
		}
	}

	return nil
}

// buildCallerContext assembles the resolver context for one file: its
// same-file symbols, its import-alias map, and the files it imports
// (resolved via the Global Index module map) — the latter doubling as the
// source of Imports edges.
func (h *RepoHandle) buildCallerContext(ff *fileFacts) resolve.CallerContext {
	ctx := resolve.CallerContext{
		FilePath:  ff.relPath,
		ModuleQN:  ff.moduleQN,
		SameFile:  sameFileSymbols(ff.result),
		ImportMap: map[string]string{},
	}

	var importedFiles []string
	seen := map[string]bool{}
	for _, imp := range ff.result.Imports {
		target, ok := resolveModulePath(h.index, h.project, ff.relPath, imp)
		if !ok {
			continue
		}
		if !seen[target] {
			seen[target] = true
			importedFiles = append(importedFiles, target)
		}

		dotted := dottedModule(ff.relPath, imp)
		if local, candidate, ok := importLocalBinding(h.project, dotted, imp); ok {
			ctx.ImportMap[local] = candidate
		}
	}
	ctx.ImportedFiles = importedFiles
	return ctx
}

func (h *RepoHandle) insertElementEdge(sourceID, targetID string, kind graph.EdgeKind) error {
	src, err := h.graph.FindNodeByElementID(sourceID)
	if err != nil || src == nil {
		return err
	}
	dst, err := h.graph.FindNodeByElementID(targetID)
	if err != nil || dst == nil {
		return err
	}
	if err := h.graph.InsertEdge(src.Handle, dst.Handle, kind); err != nil {
		return fmt.Errorf("core: insert %s edge: %w", kind, err)
	}
	return nil
}

func fileElementID(ff *fileFacts) string {
	for _, el := range ff.result.Elements {
		if el.Kind == "File" {
			return el.ID
		}
	}
	return ""
}

func fileElementIDForPath(relPath string, h *RepoHandle) string {
	if ff, ok := h.facts[relPath]; ok {
		return fileElementID(ff)
	}
	return ""
}
