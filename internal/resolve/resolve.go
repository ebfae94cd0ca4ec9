package resolve

import (
	"sort"
	"strings"
)

// CallerContext is the information about the caller's file needed to
// resolve a call or inheritance relation: its own qualified elements (for
// the same-file tier), its import map (local name -> resolved module
// path or qualified name), and the file paths it imports (for the
// import-heuristic tier).
type CallerContext struct {
	FilePath      string
	ModuleQN      string
	SameFile      []*Symbol         // elements defined in the caller's own file
	ImportMap     map[string]string // local alias/name -> resolved target (module path or QN)
	ImportedFiles []string          // files resolved from this file's ImportStatements
}

// ResolveCall resolves a callee name using the engine's four-tier priority:
//  1. Same-file match by last name component.
//  2. Symbol resolver via the caller's import map.
//  3. Import heuristic: any symbol defined in a file this one imports.
//  4. Global fallback: any symbol map entry by short name, tie-broken by
//     (file path, byte offset) ascending.
func (idx *Index) ResolveCall(calleeName string, ctx CallerContext) (string, bool) {
	parts := strings.SplitN(calleeName, ".", 2)
	prefix := parts[0]
	suffix := ""
	if len(parts) > 1 {
		suffix = parts[1]
	}
	last := calleeName
	if idxDot := strings.LastIndex(calleeName, "."); idxDot >= 0 {
		last = calleeName[idxDot+1:]
	}

	if id, ok := resolveSameFile(ctx.SameFile, last); ok {
		return id, true
	}
	if id, ok := idx.resolveViaImportMap(prefix, suffix, ctx); ok {
		return id, true
	}
	if id, ok := idx.resolveViaImportedFiles(last, ctx.ImportedFiles); ok {
		return id, true
	}
	return idx.resolveGlobalFallback(last)
}

// ResolveSuperclass resolves a base class/interface/trait name the same
// way as ResolveCall, but restricted to Class/Interface/Struct/Enum kinds,
// per the inheritance-resolution rule.
func (idx *Index) ResolveSuperclass(name string, ctx CallerContext) (string, bool) {
	isClassKind := func(s *Symbol) bool {
		switch s.Kind {
		case "Class", "Interface", "Struct", "Enum":
			return true
		default:
			return false
		}
	}

	var sameFile []*Symbol
	for _, s := range ctx.SameFile {
		if isClassKind(s) {
			sameFile = append(sameFile, s)
		}
	}
	if id, ok := resolveSameFile(sameFile, name); ok {
		return id, true
	}

	if target, ok := ctx.ImportMap[name]; ok {
		if s, ok := idx.Exact(target); ok && isClassKind(s) {
			return s.ElementID, true
		}
	}

	for _, f := range ctx.ImportedFiles {
		for _, s := range idx.ByName(name) {
			if s.FilePath == f && isClassKind(s) {
				return s.ElementID, true
			}
		}
	}

	candidates := filterByKind(idx.ByName(name), isClassKind)
	return tieBreak(candidates)
}

func resolveSameFile(sameFile []*Symbol, name string) (string, bool) {
	for _, s := range sameFile {
		if shortName(s.QualifiedName) == name {
			return s.ElementID, true
		}
	}
	return "", false
}

func (idx *Index) resolveViaImportMap(prefix, suffix string, ctx CallerContext) (string, bool) {
	resolved, ok := ctx.ImportMap[prefix]
	if !ok {
		return "", false
	}
	candidate := resolved
	if suffix != "" {
		candidate = resolved + "." + suffix
	}
	if s, ok := idx.Exact(candidate); ok {
		return s.ElementID, true
	}
	if suffix != "" {
		idx.mu.RLock()
		defer idx.mu.RUnlock()
		for qn, s := range idx.exact {
			if strings.HasPrefix(qn, resolved+".") && strings.HasSuffix(qn, "."+suffix) {
				return s.ElementID, true
			}
		}
	}
	return "", false
}

func (idx *Index) resolveViaImportedFiles(name string, importedFiles []string) (string, bool) {
	if len(importedFiles) == 0 {
		return "", false
	}
	fileSet := make(map[string]bool, len(importedFiles))
	for _, f := range importedFiles {
		fileSet[f] = true
	}
	candidates := filterByKind(idx.ByName(name), func(s *Symbol) bool { return fileSet[s.FilePath] })
	return tieBreak(candidates)
}

func (idx *Index) resolveGlobalFallback(name string) (string, bool) {
	return tieBreak(idx.ByName(name))
}

func filterByKind(symbols []*Symbol, keep func(*Symbol) bool) []*Symbol {
	var out []*Symbol
	for _, s := range symbols {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// tieBreak picks the candidate with the lexicographically smallest file
// path, then smallest byte offset — the deterministic global-fallback
// tie-break rule.
func tieBreak(candidates []*Symbol) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].FilePath != candidates[j].FilePath {
			return candidates[i].FilePath < candidates[j].FilePath
		}
		return candidates[i].ByteOffset < candidates[j].ByteOffset
	})
	return candidates[0].ElementID, true
}
