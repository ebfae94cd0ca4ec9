package lang

func init() {
	Register(&Spec{
		Language:       CPP,
		FileExtensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"},
		FunctionNodeTypes: []string{
			"function_definition",
		},
		ClassNodeTypes: []string{
			"class_specifier",
			"struct_specifier",
			"union_specifier",
			"enum_specifier",
			"type_definition",
		},
		ModuleNodeTypes: []string{"translation_unit"},
		CallNodeTypes: []string{
			"call_expression",
			"field_expression",
			"new_expression",
		},
		PackageIndicators: []string{"CMakeLists.txt", "Makefile"},
	})
}
