package extract

import (
	"bytes"
	"fmt"

	"graphcore/internal/fqn"
	"graphcore/internal/lang"
	"graphcore/internal/parser"
)

// ParseFile parses one file's source and extracts its elements, call
// sites, imports, and inheritance relations. A file-level parse failure is
// returned as an error. Bulk indexing (core.Build) collects that error into
// Stats().Errors rather than aborting the whole index; the failed file is
// not recorded in the graph, not even as a File node with zero elements.
func ParseFile(project, relPath string, source []byte, language lang.Language) (*Result, error) {
	source = bytes.TrimPrefix(source, []byte{0xEF, 0xBB, 0xBF}) // strip UTF-8 BOM

	spec := lang.ForLanguage(language)
	if spec == nil {
		return nil, fmt.Errorf("extract: no language spec for %s", language)
	}

	tree, err := parser.Parse(language, source)
	if err != nil {
		return nil, fmt.Errorf("extract: parse %s: %w", relPath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("extract: empty parse tree for %s", relPath)
	}

	result := &Result{}
	moduleQN := fqn.ModuleQN(project, relPath)
	fileID := fqn.StableID(relPath, moduleQN, "File", 0)
	result.Elements = append(result.Elements, Element{
		ID:            fileID,
		Kind:          "File",
		Name:          relPath,
		QualifiedName: moduleQN,
		FilePath:      relPath,
		Language:      language,
		StartByte:     root.StartByte(),
		EndByte:       root.EndByte(),
		StartLine:     1,
		EndLine:       int(root.EndPosition().Row) + 1,
		IsExported:    true,
	})

	st := &walkState{
		project:    project,
		relPath:    relPath,
		source:     source,
		language:   language,
		spec:       spec,
		result:     result,
		funcTypes:  toSet(spec.FunctionNodeTypes),
		classTypes: toSet(spec.ClassNodeTypes),
	}

	walkElements(st, root, fileID, "File", "")
	walkCalls(st, root)
	walkImports(st, root)

	return result, nil
}
