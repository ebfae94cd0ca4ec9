// Package lang maps file extensions to the language tags the rest of the
// engine uses, and holds a small per-language registry of tree-sitter node
// kinds that the extractors key off of.
package lang

// Language identifies a source language supported by the dispatcher.
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Go         Language = "go"
	Rust       Language = "rust"
	Java       Language = "java"
	C          Language = "c"
	CPP        Language = "cpp"
	CSharp     Language = "c-sharp"
)

// AllLanguages returns every language the dispatcher recognizes.
func AllLanguages() []Language {
	return []Language{Python, JavaScript, TypeScript, TSX, Go, Rust, Java, C, CPP, CSharp}
}

// Spec defines the tree-sitter node kinds the extractor walks for one
// language. FunctionNodeTypes/ClassNodeTypes/CallNodeTypes drive
// internal/extract's generic walks; imports and inheritance are extracted by
// per-language code in internal/extract that does not read this Spec.
// ModuleNodeTypes and PackageIndicators are recorded per language but are
// not read anywhere in the engine.
type Spec struct {
	Language       Language
	FileExtensions []string

	FunctionNodeTypes []string
	ClassNodeTypes    []string
	ModuleNodeTypes   []string
	CallNodeTypes     []string

	// PackageIndicators lists filenames that mark a directory as a package
	// root (e.g. "__init__.py"). The module map does not consult it.
	PackageIndicators []string
}

var registry = map[string]*Spec{}

// Register adds a Spec to the global registry, keyed by each of its file
// extensions.
func Register(spec *Spec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the Spec registered for a file extension (e.g. ".go"),
// or nil if the extension isn't recognized.
func ForExtension(ext string) *Spec {
	return registry[ext]
}

// ForLanguage returns the Spec for a language tag, or nil.
func ForLanguage(l Language) *Spec {
	for _, spec := range registry {
		if spec.Language == l {
			return spec
		}
	}
	return nil
}

// ForPath returns the language tag for a file path's extension, and false if
// the extension is unrecognized ("skip" per spec.md §4.1).
func ForPath(ext string) (Language, bool) {
	spec := registry[ext]
	if spec == nil {
		return "", false
	}
	return spec.Language, true
}
