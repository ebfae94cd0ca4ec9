package lang

func init() {
	Register(&Spec{
		Language:       C,
		FileExtensions: []string{".c", ".h"},
		FunctionNodeTypes: []string{
			"function_definition",
		},
		ClassNodeTypes: []string{
			"struct_specifier",
			"union_specifier",
			"enum_specifier",
			"type_definition",
		},
		ModuleNodeTypes:   []string{"translation_unit"},
		CallNodeTypes:     []string{"call_expression"},
		PackageIndicators: []string{"Makefile", "CMakeLists.txt"},
	})
}
