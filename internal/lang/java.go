package lang

func init() {
	Register(&Spec{
		Language:       Java,
		FileExtensions: []string{".java"},
		FunctionNodeTypes: []string{
			"method_declaration",
			"constructor_declaration",
		},
		ClassNodeTypes: []string{
			"class_declaration",
			"interface_declaration",
			"enum_declaration",
			"annotation_type_declaration",
			"record_declaration",
		},
		ModuleNodeTypes:   []string{"program"},
		CallNodeTypes:     []string{"method_invocation", "object_creation_expression"},
		PackageIndicators: []string{"pom.xml", "build.gradle"},
	})
}
