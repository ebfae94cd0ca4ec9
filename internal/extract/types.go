// Package extract walks a parsed file's AST and produces the element,
// call-site, import, and inheritance facts the indexing pipeline folds into
// the repository graph.
package extract

import "graphcore/internal/lang"

// Element is a single definition found in a file: a module, class,
// function, method, and so on.
type Element struct {
	ID            string
	Kind          string // File, Module, Class, Interface, Struct, Enum, Function, Method, Variable
	Name          string
	QualifiedName string
	FilePath      string
	Language      lang.Language
	StartByte     uint
	EndByte       uint
	StartLine     int
	EndLine       int
	ParentID      string // empty for top-level elements
	ParentQN      string // fallback containment hint when ParentID can't be
	// computed directly (Rust impl-block methods, whose containing struct
	// may be declared in a separate node); the graph builder resolves this
	// by qualified name within the same file when ParentID is empty.
	Snippet       string
	IsExported    bool
	Signature     string
	ReturnType    string
	BaseNames     []string // class/struct base list, for inheritance extraction
}

// CallSite records one call expression and the element that encloses it.
type CallSite struct {
	EnclosingID string
	Callee      string // textual target, e.g. "foo", "obj.foo", "mod.sub.foo"
	ByteOffset  uint
}

// ImportStatement records one import/include/use statement.
type ImportStatement struct {
	Module   string // textual module/package path as written in source
	Symbol   string // imported symbol name, empty for whole-module imports
	Alias    string // local alias/binding name, empty if none
	Relative bool   // Python-style relative import
}

// InheritanceEdge records one base-class/trait/interface relation found in
// a class-like declaration's clause.
type InheritanceEdge struct {
	SubjectQN string
	SuperName string
	Relation  string // "inherits" or "implements"
}

// Result is everything ParseFile extracts from one source file.
type Result struct {
	Elements    []Element
	Calls       []CallSite
	Imports     []ImportStatement
	Inheritance []InheritanceEdge
}
