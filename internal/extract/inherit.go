package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"graphcore/internal/lang"
	"graphcore/internal/parser"
)

// classRelations returns the typed (name, relation) pairs for a class-like
// declaration, per language:
//   - Python: the base list of a class definition (all "inherits").
//   - JS/TS: extends and implements clauses, tagged accordingly.
//   - Java: extends (inherits) and implements (implements).
//   - C++: base-class list (all "inherits"; access specifier ignored).
//   - Go: no inheritance; this is never invoked for Go.
func classRelations(node *tree_sitter.Node, source []byte, language lang.Language) []InheritanceEdge {
	switch language {
	case lang.Python:
		return tagAll(pythonBases(node, source), "inherits")
	case lang.Java:
		return javaRelations(node, source)
	case lang.JavaScript, lang.TypeScript, lang.TSX:
		return tsRelations(node, source)
	case lang.CPP:
		return tagAll(cppBases(node, source), "inherits")
	default:
		return nil
	}
}

func tagAll(names []string, relation string) []InheritanceEdge {
	rels := make([]InheritanceEdge, 0, len(names))
	for _, n := range names {
		rels = append(rels, InheritanceEdge{SuperName: n, Relation: relation})
	}
	return rels
}

func pythonBases(node *tree_sitter.Node, source []byte) []string {
	superNode := node.ChildByFieldName("superclasses")
	if superNode == nil {
		return nil
	}
	var bases []string
	for i := uint(0); i < superNode.NamedChildCount(); i++ {
		child := superNode.NamedChild(i)
		if child == nil || child.Kind() == "keyword_argument" {
			continue
		}
		if name := parser.NodeText(child, source); name != "" {
			bases = append(bases, name)
		}
	}
	return bases
}

func javaRelations(node *tree_sitter.Node, source []byte) []InheritanceEdge {
	var rels []InheritanceEdge
	if superNode := node.ChildByFieldName("superclass"); superNode != nil {
		if typeID := findChildByKind(superNode, "type_identifier"); typeID != nil {
			if name := parser.NodeText(typeID, source); name != "" {
				rels = append(rels, InheritanceEdge{SuperName: name, Relation: "inherits"})
			}
		}
	}
	if implNode := node.ChildByFieldName("interfaces"); implNode != nil {
		for i := uint(0); i < implNode.NamedChildCount(); i++ {
			child := implNode.NamedChild(i)
			if child == nil {
				continue
			}
			if name := cleanTypeName(parser.NodeText(child, source)); name != "" {
				rels = append(rels, InheritanceEdge{SuperName: name, Relation: "implements"})
			}
		}
	}
	return rels
}

func tsRelations(node *tree_sitter.Node, source []byte) []InheritanceEdge {
	var rels []InheritanceEdge
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "class_heritage" {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			hChild := child.Child(j)
			if hChild == nil {
				continue
			}
			switch hChild.Kind() {
			case "extends_clause":
				if valNode := hChild.ChildByFieldName("value"); valNode != nil {
					if name := parser.NodeText(valNode, source); name != "" {
						rels = append(rels, InheritanceEdge{SuperName: name, Relation: "inherits"})
					}
				}
			case "implements_clause":
				for k := uint(0); k < hChild.NamedChildCount(); k++ {
					n := hChild.NamedChild(k)
					if n == nil {
						continue
					}
					if name := parser.NodeText(n, source); name != "" {
						rels = append(rels, InheritanceEdge{SuperName: name, Relation: "implements"})
					}
				}
			case "identifier", "member_expression":
				// plain JS `class X extends Y` has no extends_clause wrapper
				if name := parser.NodeText(hChild, source); name != "" {
					rels = append(rels, InheritanceEdge{SuperName: name, Relation: "inherits"})
				}
			}
		}
	}
	return rels
}

func cppBases(node *tree_sitter.Node, source []byte) []string {
	var bases []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "base_class_clause" {
			continue
		}
		for j := uint(0); j < child.NamedChildCount(); j++ {
			base := child.NamedChild(j)
			if base != nil && base.Kind() == "type_identifier" {
				if name := parser.NodeText(base, source); name != "" {
					bases = append(bases, name)
				}
			}
		}
	}
	return bases
}

func findChildByKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

func cleanTypeName(text string) string {
	// Strip generic type arguments, e.g. "Comparable<Foo>" -> "Comparable".
	for i, r := range text {
		if r == '<' {
			return text[:i]
		}
	}
	return text
}

// rustImplRelation returns the IMPLEMENTS relation for `impl Trait for Type`,
// or the zero value if this is a plain `impl Type` block (which yields
// nothing per language rules).
func rustImplRelation(node *tree_sitter.Node, source []byte) (typeName, traitName string, ok bool) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return "", "", false
	}
	typeName = parser.NodeText(typeNode, source)
	traitNode := node.ChildByFieldName("trait")
	if traitNode == nil || typeName == "" {
		return typeName, "", false
	}
	traitName = parser.NodeText(traitNode, source)
	if traitName == "" {
		return typeName, "", false
	}
	return typeName, traitName, true
}
