package extract

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"graphcore/internal/lang"
	"graphcore/internal/parser"
)

// walkImports dispatches to the per-language import extractor and appends
// whatever it finds to st.result.Imports.
func walkImports(st *walkState, root *tree_sitter.Node) {
	switch st.language {
	case lang.Go:
		goImports(st, root)
	case lang.Python:
		pythonImports(st, root)
	case lang.JavaScript, lang.TypeScript, lang.TSX:
		jsImports(st, root)
	case lang.Rust:
		rustImports(st, root)
	case lang.Java:
		javaImports(st, root)
	case lang.C, lang.CPP:
		cImports(st, root)
	}
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
		if s[0] == '`' && s[len(s)-1] == '`' {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// goImports handles single and grouped `import (...)` declarations, with
// optional alias and blank/dot imports.
func goImports(st *walkState, root *tree_sitter.Node) {
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		if node.Kind() != "import_spec" {
			return true
		}
		pathNode := node.ChildByFieldName("path")
		if pathNode == nil {
			return false
		}
		path := stripQuotes(parser.NodeText(pathNode, st.source))
		if path == "" {
			return false
		}
		alias := ""
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			alias = parser.NodeText(nameNode, st.source)
		}
		st.result.Imports = append(st.result.Imports, ImportStatement{Module: path, Alias: alias})
		return false
	})
}

// pythonImports handles `import a.b.c`, `from a.b import x, y as z`, and
// relative imports (`from . import x`, `from ..m import y`) with the dot
// count preserved on Module.
func pythonImports(st *walkState, root *tree_sitter.Node) {
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		switch node.Kind() {
		case "import_statement":
			pythonPlainImport(st, node)
			return false
		case "import_from_statement":
			pythonFromImport(st, node)
			return false
		}
		return true
	})
}

func pythonPlainImport(st *walkState, node *tree_sitter.Node) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			name := parser.NodeText(child, st.source)
			st.result.Imports = append(st.result.Imports, ImportStatement{Module: name})
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			alias := ""
			if a := child.ChildByFieldName("alias"); a != nil {
				alias = parser.NodeText(a, st.source)
			}
			st.result.Imports = append(st.result.Imports, ImportStatement{
				Module: parser.NodeText(nameNode, st.source),
				Alias:  alias,
			})
		}
	}
}

func pythonFromImport(st *walkState, node *tree_sitter.Node) {
	moduleNode := node.ChildByFieldName("module_name")
	modulePath := ""
	relative := false
	if moduleNode != nil {
		modulePath = parser.NodeText(moduleNode, st.source)
		relative = strings.HasPrefix(modulePath, ".")
	} else if strings.HasPrefix(parser.NodeText(node, st.source), "from .") {
		relative = true
		modulePath = "."
	}

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			name := parser.NodeText(child, st.source)
			if name == modulePath {
				continue
			}
			st.result.Imports = append(st.result.Imports, ImportStatement{
				Module: modulePath, Symbol: name, Relative: relative,
			})
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			alias := ""
			if a := child.ChildByFieldName("alias"); a != nil {
				alias = parser.NodeText(a, st.source)
			}
			st.result.Imports = append(st.result.Imports, ImportStatement{
				Module: modulePath, Symbol: parser.NodeText(nameNode, st.source),
				Alias: alias, Relative: relative,
			})
		}
	}
}

// jsImports handles `import x from 'm'`, `import {a, b as c} from 'm'`,
// `import * as ns from 'm'`, statement-position `require('m')`, and bare
// `import 'm'`.
func jsImports(st *walkState, root *tree_sitter.Node) {
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		switch node.Kind() {
		case "import_statement":
			jsImportStatement(st, node)
			return false
		case "variable_declarator":
			jsRequireAssignment(st, node)
		}
		return true
	})
}

func jsImportStatement(st *walkState, node *tree_sitter.Node) {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return
	}
	module := stripQuotes(parser.NodeText(sourceNode, st.source))
	clause := findChildByKind(node, "import_clause")
	if clause == nil {
		// bare `import 'm'`
		st.result.Imports = append(st.result.Imports, ImportStatement{Module: module})
		return
	}
	parser.Walk(clause, func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case "identifier":
			st.result.Imports = append(st.result.Imports, ImportStatement{Module: module, Alias: parser.NodeText(n, st.source)})
			return false
		case "namespace_import":
			if id := findChildByKind(n, "identifier"); id != nil {
				st.result.Imports = append(st.result.Imports, ImportStatement{Module: module, Symbol: "*", Alias: parser.NodeText(id, st.source)})
			}
			return false
		case "import_specifier":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				return false
			}
			alias := ""
			if a := n.ChildByFieldName("alias"); a != nil {
				alias = parser.NodeText(a, st.source)
			}
			st.result.Imports = append(st.result.Imports, ImportStatement{
				Module: module, Symbol: parser.NodeText(nameNode, st.source), Alias: alias,
			})
			return false
		}
		return true
	})
}

func jsRequireAssignment(st *walkState, node *tree_sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	valueNode := node.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil || valueNode.Kind() != "call_expression" {
		return
	}
	fn := valueNode.ChildByFieldName("function")
	if fn == nil || parser.NodeText(fn, st.source) != "require" {
		return
	}
	args := valueNode.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return
	}
	module := stripQuotes(parser.NodeText(args.NamedChild(0), st.source))
	st.result.Imports = append(st.result.Imports, ImportStatement{
		Module: module, Alias: parser.NodeText(nameNode, st.source),
	})
}

// rustImports handles `use a::b::{c, d as e}` and `mod m;` local submodule
// declarations.
func rustImports(st *walkState, root *tree_sitter.Node) {
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		switch node.Kind() {
		case "use_declaration":
			rustUseTree(st, node.ChildByFieldName("argument"), "")
			return false
		case "mod_item":
			if nameNode := node.ChildByFieldName("name"); nameNode != nil && findChildByKind(node, "declaration_list") == nil {
				st.result.Imports = append(st.result.Imports, ImportStatement{
					Module: parser.NodeText(nameNode, st.source), Relative: true,
				})
			}
			return false
		}
		return true
	})
}

func rustUseTree(st *walkState, node *tree_sitter.Node, prefix string) {
	if node == nil {
		return
	}
	switch node.Kind() {
	case "scoped_identifier":
		path := parser.NodeText(node, st.source)
		st.result.Imports = append(st.result.Imports, ImportStatement{Module: path})
	case "identifier", "self":
		path := joinRustPath(prefix, parser.NodeText(node, st.source))
		st.result.Imports = append(st.result.Imports, ImportStatement{Module: path})
	case "use_as_clause":
		pathNode := node.ChildByFieldName("path")
		aliasNode := node.ChildByFieldName("alias")
		if pathNode == nil {
			return
		}
		alias := ""
		if aliasNode != nil {
			alias = parser.NodeText(aliasNode, st.source)
		}
		st.result.Imports = append(st.result.Imports, ImportStatement{
			Module: joinRustPath(prefix, parser.NodeText(pathNode, st.source)), Alias: alias,
		})
	case "scoped_use_list":
		pathNode := node.ChildByFieldName("path")
		base := prefix
		if pathNode != nil {
			base = joinRustPath(prefix, parser.NodeText(pathNode, st.source))
		}
		listNode := node.ChildByFieldName("list")
		if listNode != nil {
			for i := uint(0); i < listNode.NamedChildCount(); i++ {
				rustUseTree(st, listNode.NamedChild(i), base)
			}
		}
	case "use_list":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			rustUseTree(st, node.NamedChild(i), prefix)
		}
	case "use_wildcard":
		st.result.Imports = append(st.result.Imports, ImportStatement{Module: prefix, Symbol: "*"})
	}
}

func joinRustPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "::" + segment
}

// javaImports handles `import a.b.C;`, `import a.b.*;`, and file-head
// `package a.b;`.
func javaImports(st *walkState, root *tree_sitter.Node) {
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		if node.Kind() != "import_declaration" {
			return true
		}
		var path string
		wildcard := false
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "scoped_identifier", "identifier":
				path = parser.NodeText(child, st.source)
			case "asterisk":
				wildcard = true
			}
		}
		if path == "" {
			return false
		}
		if wildcard {
			st.result.Imports = append(st.result.Imports, ImportStatement{Module: path, Symbol: "*"})
		} else {
			st.result.Imports = append(st.result.Imports, ImportStatement{Module: path})
		}
		return false
	})
}

// cImports handles `#include "x.h"` (repository-relative candidate) and
// `#include <x.h>` (system header; recorded but resolution may fail).
func cImports(st *walkState, root *tree_sitter.Node) {
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		if node.Kind() != "preproc_include" {
			return true
		}
		pathNode := node.ChildByFieldName("path")
		if pathNode == nil {
			return false
		}
		text := parser.NodeText(pathNode, st.source)
		relative := pathNode.Kind() == "string_literal"
		path := strings.Trim(text, "\"<>")
		st.result.Imports = append(st.result.Imports, ImportStatement{Module: path, Relative: relative})
		return false
	})
}
