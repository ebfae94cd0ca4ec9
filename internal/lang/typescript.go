package lang

func init() {
	Register(&Spec{
		Language:       TypeScript,
		FileExtensions: []string{".ts"},
		FunctionNodeTypes: []string{
			"function_declaration",
			"generator_function_declaration",
			"function_expression",
			"arrow_function",
			"method_definition",
			"function_signature",
		},
		ClassNodeTypes: []string{
			"class_declaration",
			"class",
			"abstract_class_declaration",
			"enum_declaration",
			"interface_declaration",
		},
		ModuleNodeTypes:   []string{"program"},
		CallNodeTypes:     []string{"call_expression"},
		PackageIndicators: []string{"package.json", "tsconfig.json"},
	})
}
