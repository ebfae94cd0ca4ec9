package extract

import (
	"testing"

	"graphcore/internal/lang"
)

func findElement(t *testing.T, result *Result, name, kind string) Element {
	t.Helper()
	for _, e := range result.Elements {
		if e.Name == name && e.Kind == kind {
			return e
		}
	}
	t.Fatalf("no %s element named %q found (have %d elements)", kind, name, len(result.Elements))
	return Element{}
}

func TestParseFilePythonFunctionsAndClasses(t *testing.T) {
	source := []byte(`class Greeter:
    def greet(self, name):
        return do_greet(name)

def do_greet(name):
    return f"hi {name}"
`)
	result, err := ParseFile("demo", "pkg/greeter.py", source, lang.Python)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	cls := findElement(t, result, "Greeter", "Class")
	method := findElement(t, result, "greet", "Method")
	if method.ParentID != cls.ID {
		t.Errorf("expected greet's parent to be Greeter, got %q want %q", method.ParentID, cls.ID)
	}
	fn := findElement(t, result, "do_greet", "Function")
	if fn.ParentID == cls.ID {
		t.Error("do_greet should not be parented under Greeter")
	}

	var sawCall bool
	for _, c := range result.Calls {
		if c.Callee == "do_greet" {
			sawCall = true
			if c.EnclosingID != method.ID {
				t.Errorf("call to do_greet enclosed by %q, want %q", c.EnclosingID, method.ID)
			}
		}
	}
	if !sawCall {
		t.Error("expected a call to do_greet")
	}
}

func TestParseFilePythonImports(t *testing.T) {
	source := []byte(`import os
from pkg.util import helper as h
from . import sibling
`)
	result, err := ParseFile("demo", "pkg/main.py", source, lang.Python)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(result.Imports) != 3 {
		t.Fatalf("expected 3 imports, got %d: %+v", len(result.Imports), result.Imports)
	}
}

func TestParseFileTypeScriptInheritance(t *testing.T) {
	source := []byte(`interface Shape {
  area(): number;
}

class Circle extends Base implements Shape {
  area(): number {
    return 0;
  }
}
`)
	result, err := ParseFile("demo", "src/shapes.ts", source, lang.TypeScript)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	var inherits, implements bool
	for _, rel := range result.Inheritance {
		switch {
		case rel.Relation == "inherits" && rel.SuperName == "Base":
			inherits = true
		case rel.Relation == "implements" && rel.SuperName == "Shape":
			implements = true
		}
	}
	if !inherits {
		t.Error("expected inherits relation to Base")
	}
	if !implements {
		t.Error("expected implements relation to Shape")
	}
}

func TestParseFileGoEmitsNoInheritance(t *testing.T) {
	source := []byte(`package main

type Writer interface {
	Write([]byte) (int, error)
}

type File struct{}

func (f *File) Write(b []byte) (int, error) {
	return len(b), nil
}
`)
	result, err := ParseFile("demo", "main.go", source, lang.Go)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(result.Inheritance) != 0 {
		t.Errorf("Go should emit no inheritance relations, got %+v", result.Inheritance)
	}
	findElement(t, result, "Write", "Method")
}

func TestParseFileRustImplTrait(t *testing.T) {
	source := []byte(`struct Counter {
    value: i32,
}

trait Incrementable {
    fn increment(&mut self);
}

impl Incrementable for Counter {
    fn increment(&mut self) {
        self.value += 1;
    }
}

impl Counter {
    fn value(&self) -> i32 {
        self.value
    }
}
`)
	result, err := ParseFile("demo", "src/counter.rs", source, lang.Rust)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	var found bool
	for _, rel := range result.Inheritance {
		if rel.Relation == "implements" && rel.SuperName == "Incrementable" {
			found = true
		}
	}
	if !found {
		t.Error("expected Counter implements Incrementable")
	}

	increment := findElement(t, result, "increment", "Method")
	if increment.ParentQN == "" {
		t.Error("expected increment to carry a ParentQN pointing at Counter")
	}
	value := findElement(t, result, "value", "Method")
	if value.ParentQN == "" {
		t.Error("expected plain-impl method value to still carry a ParentQN")
	}
}

func TestParseFileUnsupportedLanguage(t *testing.T) {
	if _, err := ParseFile("demo", "x.unknown", []byte("x"), lang.Language("unknown")); err == nil {
		t.Error("expected error for unrecognized language")
	}
}
