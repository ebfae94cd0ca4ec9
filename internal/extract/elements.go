package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"graphcore/internal/fqn"
	"graphcore/internal/lang"
	"graphcore/internal/parser"
)

// walkState carries the per-file context threaded through the recursive
// element walk.
type walkState struct {
	project  string
	relPath  string
	source   []byte
	language lang.Language
	spec     *lang.Spec
	result   *Result

	funcTypes  map[string]bool
	classTypes map[string]bool
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

// walkElements performs the generic, language-agnostic element walk: any
// node whose kind is in the language's FunctionNodeTypes or ClassNodeTypes
// becomes an Element, nested under its innermost enclosing element.
func walkElements(st *walkState, node *tree_sitter.Node, parentID, parentKind, parentQN string) {
	if node == nil {
		return
	}

	kind := node.Kind()
	nextParentID, nextParentKind, nextParentQN := parentID, parentKind, parentQN

	switch {
	case kind == "impl_item" && st.language == lang.Rust:
		// Rust impl blocks have no "name" field of their own; the methods
		// inside attach to the implementing type by qualified name, and an
		// `impl Trait for Type` additionally yields an Implements relation.
		if qn := rustImplBlock(st, node); qn != "" {
			nextParentID, nextParentKind, nextParentQN = "", "Struct", qn
		}
	case st.funcTypes[kind]:
		insideClass := isClassKind(parentKind)
		if el := buildFunctionElement(st, node, parentID, insideClass); el != nil {
			if parentID == "" && parentQN != "" {
				el.ParentQN = parentQN
			}
			st.result.Elements = append(st.result.Elements, *el)
			nextParentID, nextParentKind, nextParentQN = el.ID, el.Kind, ""
		}
	case st.classTypes[kind]:
		if el := buildClassElement(st, node, parentID); el != nil {
			st.result.Elements = append(st.result.Elements, *el)
			nextParentID, nextParentKind, nextParentQN = el.ID, el.Kind, ""
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			walkElements(st, child, nextParentID, nextParentKind, nextParentQN)
		}
	}
}

// rustImplBlock records the Implements relation for `impl Trait for Type`
// (plain `impl Type` yields nothing) and returns the implementing type's
// qualified name so nested method elements can carry it as ParentQN.
func rustImplBlock(st *walkState, node *tree_sitter.Node) string {
	typeName, traitName, hasTrait := rustImplRelation(node, st.source)
	if typeName == "" {
		return ""
	}
	typeQN := fqn.Compute(st.project, st.relPath, typeName)
	if hasTrait {
		st.result.Inheritance = append(st.result.Inheritance, InheritanceEdge{
			SubjectQN: typeQN, SuperName: traitName, Relation: "implements",
		})
	}
	return typeQN
}

func isClassKind(kind string) bool {
	switch kind {
	case "Class", "Interface", "Struct", "Enum":
		return true
	default:
		return false
	}
}

func funcNameNode(node *tree_sitter.Node) *tree_sitter.Node {
	if n := node.ChildByFieldName("name"); n != nil {
		return n
	}
	// JS/TS: const handler = () => {} — name lives on the enclosing
	// variable_declarator, not the arrow_function itself.
	if node.Kind() == "arrow_function" {
		if p := node.Parent(); p != nil && p.Kind() == "variable_declarator" {
			return p.ChildByFieldName("name")
		}
	}
	return nil
}

func buildFunctionElement(st *walkState, node *tree_sitter.Node, parentID string, insideClass bool) *Element {
	nameNode := funcNameNode(node)
	if nameNode == nil {
		// Anonymous/inline functions not bound to a visible name are omitted.
		return nil
	}
	name := parser.NodeText(nameNode, st.source)
	if name == "" {
		return nil
	}

	qn := fqn.Compute(st.project, st.relPath, name)
	kind := "Function"

	if recv := node.ChildByFieldName("receiver"); recv != nil {
		kind = "Method"
	} else if insideClass {
		kind = "Method"
	}

	var signature, returnType string
	if params := node.ChildByFieldName("parameters"); params != nil {
		signature = parser.NodeText(params, st.source)
	}
	for _, field := range []string{"result", "return_type", "type"} {
		if rt := node.ChildByFieldName(field); rt != nil {
			returnType = parser.NodeText(rt, st.source)
			break
		}
	}

	id := fqn.StableID(st.relPath, qn, kind, node.StartByte())
	return &Element{
		ID:            id,
		Kind:          kind,
		Name:          name,
		QualifiedName: qn,
		FilePath:      st.relPath,
		Language:      st.language,
		StartByte:     node.StartByte(),
		EndByte:       node.EndByte(),
		StartLine:     int(node.StartPosition().Row) + 1,
		EndLine:       int(node.EndPosition().Row) + 1,
		ParentID:      parentID,
		Snippet:       parser.NodeText(node, st.source),
		IsExported:    isExported(name, st.language),
		Signature:     signature,
		ReturnType:    returnType,
	}
}

func classNameNode(node *tree_sitter.Node) *tree_sitter.Node {
	if n := node.ChildByFieldName("name"); n != nil {
		return n
	}
	return nil
}

// classLabel derives an element's kind from its tree-sitter node kind. Go's
// type_spec wraps either an interface_type or a struct_type (or a plain
// alias) in its "type" field, so those need a peek at that child to tell
// Interface from Struct from Class.
func classLabel(node *tree_sitter.Node) string {
	switch node.Kind() {
	case "interface_declaration", "trait_item":
		return "Interface"
	case "enum_declaration", "enum_item", "enum_specifier":
		return "Enum"
	case "struct_item", "struct_specifier":
		return "Struct"
	case "type_spec", "type_alias":
		if t := node.ChildByFieldName("type"); t != nil {
			switch t.Kind() {
			case "interface_type":
				return "Interface"
			case "struct_type":
				return "Struct"
			}
		}
		return "Class"
	default:
		return "Class"
	}
}

func buildClassElement(st *walkState, node *tree_sitter.Node, parentID string) *Element {
	nameNode := classNameNode(node)
	if nameNode == nil {
		return nil
	}
	name := parser.NodeText(nameNode, st.source)
	if name == "" {
		return nil
	}

	qn := fqn.Compute(st.project, st.relPath, name)
	kind := classLabel(node)
	id := fqn.StableID(st.relPath, qn, kind, node.StartByte())

	el := &Element{
		ID:            id,
		Kind:          kind,
		Name:          name,
		QualifiedName: qn,
		FilePath:      st.relPath,
		Language:      st.language,
		StartByte:     node.StartByte(),
		EndByte:       node.EndByte(),
		StartLine:     int(node.StartPosition().Row) + 1,
		EndLine:       int(node.EndPosition().Row) + 1,
		ParentID:      parentID,
		Snippet:       parser.NodeText(node, st.source),
		IsExported:    isExported(name, st.language),
	}
	for _, rel := range classRelations(node, st.source, st.language) {
		rel.SubjectQN = qn
		st.result.Inheritance = append(st.result.Inheritance, rel)
		el.BaseNames = append(el.BaseNames, rel.SuperName)
	}
	return el
}

func isExported(name string, language lang.Language) bool {
	if name == "" {
		return false
	}
	switch language {
	case lang.Go:
		return name[0] >= 'A' && name[0] <= 'Z'
	case lang.Python:
		return name[0] != '_'
	case lang.Java, lang.CSharp:
		return name[0] >= 'A' && name[0] <= 'Z'
	default:
		return true
	}
}
