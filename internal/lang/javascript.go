package lang

func init() {
	Register(&Spec{
		Language:       JavaScript,
		FileExtensions: []string{".js", ".mjs", ".cjs"}, // .jsx resolves to TSX, per the dispatcher table
		FunctionNodeTypes: []string{
			"function_declaration",
			"generator_function_declaration",
			"function_expression",
			"arrow_function",
			"method_definition",
		},
		ClassNodeTypes:    []string{"class_declaration", "class"},
		ModuleNodeTypes:   []string{"program"},
		CallNodeTypes:     []string{"call_expression"},
		PackageIndicators: []string{"package.json"},
	})
}
