package lang

func init() {
	Register(&Spec{
		Language:       CSharp,
		FileExtensions: []string{".cs"},
		FunctionNodeTypes: []string{
			"method_declaration",
			"constructor_declaration",
			"destructor_declaration",
			"local_function_statement",
			"lambda_expression",
		},
		ClassNodeTypes: []string{
			"class_declaration",
			"interface_declaration",
			"struct_declaration",
			"enum_declaration",
			"record_declaration",
		},
		ModuleNodeTypes:   []string{"compilation_unit"},
		CallNodeTypes:     []string{"invocation_expression", "object_creation_expression"},
		PackageIndicators: []string{"*.csproj"},
	})
}
