package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"graphcore/internal/lang"
	"graphcore/internal/parser"
)

// walkCalls visits every call-expression node and records it against the
// innermost element whose byte range covers the call site. elements is
// assumed sorted by StartByte ascending with widest ranges first at a given
// start, which ParseFile guarantees by construction (parents appended
// before the children found while walking them).
func walkCalls(st *walkState, root *tree_sitter.Node) {
	callTypes := toSet(st.spec.CallNodeTypes)
	parser.Walk(root, func(node *tree_sitter.Node) bool {
		if callTypes[node.Kind()] {
			if callee := extractCalleeName(node, st.source, st.language); callee != "" {
				st.result.Calls = append(st.result.Calls, CallSite{
					EnclosingID: enclosingElement(st.result.Elements, node.StartByte()),
					Callee:      callee,
					ByteOffset:  node.StartByte(),
				})
			}
		}
		return true
	})
}

// enclosingElement finds the element with the smallest byte range containing
// offset, i.e. the innermost definition covering the call site.
func enclosingElement(elements []Element, offset uint) string {
	var best *Element
	for i := range elements {
		e := &elements[i]
		if e.StartByte <= offset && offset < e.EndByte {
			if best == nil || (e.EndByte-e.StartByte) < (best.EndByte-best.StartByte) {
				best = e
			}
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

func extractCalleeName(node *tree_sitter.Node, source []byte, language lang.Language) string {
	if funcNode := node.ChildByFieldName("function"); funcNode != nil {
		switch funcNode.Kind() {
		case "identifier", "selector_expression", "attribute", "member_expression", "field_expression":
			return parser.NodeText(funcNode, source)
		}
	}
	// Java method_invocation: callee lives on the "name" field, with an
	// optional "object" field for the receiver.
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		name := parser.NodeText(nameNode, source)
		if objNode := node.ChildByFieldName("object"); objNode != nil {
			return parser.NodeText(objNode, source) + "." + name
		}
		return name
	}
	// `new X(...)` is extracted as a call to X.
	if typeNode := node.ChildByFieldName("type"); typeNode != nil &&
		(node.Kind() == "object_creation_expression" || node.Kind() == "new_expression") {
		return parser.NodeText(typeNode, source)
	}
	// Rust macro_invocation: the macro path is the "macro" field.
	if macroNode := node.ChildByFieldName("macro"); macroNode != nil {
		return parser.NodeText(macroNode, source)
	}
	// Fallback: first named child, for grammars with no field name on the
	// callee (e.g. C++ call_expression where "function" covers it already,
	// kept here for the rare grammar variant that omits the field).
	if first := node.NamedChild(0); first != nil {
		switch first.Kind() {
		case "identifier", "member_expression", "field_expression":
			return parser.NodeText(first, source)
		}
	}
	return ""
}
