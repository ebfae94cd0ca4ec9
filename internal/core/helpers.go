package core

import (
	"path"
	"strings"

	"graphcore/internal/bm25"
	"graphcore/internal/extract"
	"graphcore/internal/resolve"
)

var symbolKinds = map[string]bool{
	"Function": true, "Method": true, "Class": true,
	"Interface": true, "Struct": true, "Enum": true, "Variable": true,
}

func dirOf(relPath string) string {
	d := path.Dir(relPath)
	if d == "." {
		return ""
	}
	return d
}

// symbolsFor returns the Global Index symbol entries for a file's elements
// — every kind except File, per the symbol-map invariant.
func symbolsFor(res *extract.Result) []resolve.Symbol {
	var out []resolve.Symbol
	for _, el := range res.Elements {
		if !symbolKinds[el.Kind] {
			continue
		}
		out = append(out, resolve.Symbol{
			ElementID:     el.ID,
			QualifiedName: el.QualifiedName,
			Kind:          el.Kind,
			FilePath:      el.FilePath,
			ByteOffset:    el.StartByte,
		})
	}
	return out
}

func exportedSetFor(res *extract.Result) map[string]bool {
	set := map[string]bool{}
	for _, el := range res.Elements {
		if symbolKinds[el.Kind] && el.IsExported {
			set[el.QualifiedName] = true
		}
	}
	return set
}

func documentFor(el extract.Element) bm25.Document {
	return bm25.Document{
		ElementID:     el.ID,
		Name:          el.Name,
		QualifiedName: el.QualifiedName,
		Snippet:       el.Snippet,
	}
}

// sameFileSymbols returns the Global Index symbols belonging to one file,
// for the same-file tier of call/inheritance resolution.
func sameFileSymbols(res *extract.Result) []*resolve.Symbol {
	var out []*resolve.Symbol
	for i := range res.Elements {
		el := &res.Elements[i]
		if !symbolKinds[el.Kind] {
			continue
		}
		out = append(out, &resolve.Symbol{
			ElementID:     el.ID,
			QualifiedName: el.QualifiedName,
			Kind:          el.Kind,
			FilePath:      el.FilePath,
			ByteOffset:    el.StartByte,
		})
	}
	return out
}

// resolveModulePath turns an ImportStatement's textual module reference
// into a registered module path in the Global Index, handling Python's
// dot-count-preserved relative imports and JS/TS's slash-path relative
// imports. Absolute imports (Go, Java, Rust `use`, C #include) are looked
// up by converting their separators to dots directly.
func resolveModulePath(idx *resolve.Index, project, fromRelPath string, imp extract.ImportStatement) (string, bool) {
	fromDir := dirOf(fromRelPath)

	var dotted string
	switch {
	case imp.Relative && !strings.Contains(imp.Module, "/"):
		dotted = pythonRelativeModule(fromDir, imp.Module)
	case strings.HasPrefix(imp.Module, "."):
		cleaned := path.Clean(path.Join(fromDir, imp.Module))
		dotted = strings.ReplaceAll(strings.Trim(cleaned, "/"), "/", ".")
	default:
		r := strings.NewReplacer("::", ".", "/", ".")
		dotted = r.Replace(imp.Module)
	}
	dotted = strings.Trim(dotted, ".")
	if dotted == "" {
		return "", false
	}
	qn := project + "." + dotted
	return idx.FileForModule(qn)
}

// pythonRelativeModule resolves "." (same package), ".." (parent), etc,
// with trailing dotted segments, against the importing file's directory.
func pythonRelativeModule(fromDir, module string) string {
	level := 0
	for level < len(module) && module[level] == '.' {
		level++
	}
	rest := module[level:]

	dir := fromDir
	for i := 0; i < level-1; i++ {
		dir = path.Dir(dir)
		if dir == "." {
			dir = ""
		}
	}

	var parts []string
	if dir != "" {
		parts = strings.Split(dir, "/")
	}
	if rest != "" {
		parts = append(parts, strings.Split(rest, ".")...)
	}
	return strings.Join(parts, ".")
}

// importLocalBinding returns the local name an ImportStatement binds and
// the qualified-name candidate it resolves to, for the Global Index's
// import-map-based (tier 2) call and superclass resolution. ok is false for
// imports that can't build a usable candidate (wildcard imports, imports
// with no resolvable local name).
func importLocalBinding(project, moduleDotted string, imp extract.ImportStatement) (local, candidate string, ok bool) {
	if imp.Symbol == "*" {
		return "", "", false
	}
	if imp.Symbol != "" {
		local = imp.Alias
		if local == "" {
			local = imp.Symbol
		}
		return local, project + "." + moduleDotted + "." + imp.Symbol, true
	}

	local = imp.Alias
	if local == "" {
		local = lastSegment(moduleDotted)
	}
	if local == "" {
		return "", "", false
	}
	return local, project + "." + moduleDotted, true
}

func lastSegment(dotted string) string {
	if i := strings.LastIndexByte(dotted, '.'); i >= 0 {
		return dotted[i+1:]
	}
	return dotted
}

func dottedModule(fromRelPath string, imp extract.ImportStatement) string {
	fromDir := dirOf(fromRelPath)
	switch {
	case imp.Relative && !strings.Contains(imp.Module, "/"):
		return pythonRelativeModule(fromDir, imp.Module)
	case strings.HasPrefix(imp.Module, "."):
		cleaned := path.Clean(path.Join(fromDir, imp.Module))
		return strings.ReplaceAll(strings.Trim(cleaned, "/"), "/", ".")
	default:
		r := strings.NewReplacer("::", ".", "/", ".")
		return r.Replace(imp.Module)
	}
}
