package resolve

import "testing"

func TestAddFileAndResolveSameFile(t *testing.T) {
	idx := New()
	idx.AddFile("pkg/a.go", []string{"demo.pkg"}, []Symbol{
		{ElementID: "id1", QualifiedName: "demo.pkg.Helper", Kind: "Function", FilePath: "pkg/a.go", ByteOffset: 10},
	}, nil)

	ctx := CallerContext{FilePath: "pkg/a.go", SameFile: []*Symbol{
		{ElementID: "id1", QualifiedName: "demo.pkg.Helper", Kind: "Function", FilePath: "pkg/a.go", ByteOffset: 10},
	}}
	id, ok := idx.ResolveCall("Helper", ctx)
	if !ok || id != "id1" {
		t.Fatalf("ResolveCall same-file = (%q, %v), want (id1, true)", id, ok)
	}
}

func TestResolveViaImportMap(t *testing.T) {
	idx := New()
	idx.AddFile("pkg/b.go", []string{"demo.pkg.b"}, []Symbol{
		{ElementID: "id2", QualifiedName: "demo.pkg.b.DoThing", Kind: "Function", FilePath: "pkg/b.go", ByteOffset: 5},
	}, nil)

	ctx := CallerContext{
		FilePath:  "pkg/a.go",
		ImportMap: map[string]string{"b": "demo.pkg.b"},
	}
	id, ok := idx.ResolveCall("b.DoThing", ctx)
	if !ok || id != "id2" {
		t.Fatalf("ResolveCall via import map = (%q, %v), want (id2, true)", id, ok)
	}
}

func TestResolveGlobalFallbackTieBreak(t *testing.T) {
	idx := New()
	idx.AddFile("z/late.go", []string{"demo.z"}, []Symbol{
		{ElementID: "late", QualifiedName: "demo.z.Shared", Kind: "Function", FilePath: "z/late.go", ByteOffset: 100},
	}, nil)
	idx.AddFile("a/early.go", []string{"demo.a"}, []Symbol{
		{ElementID: "early", QualifiedName: "demo.a.Shared", Kind: "Function", FilePath: "a/early.go", ByteOffset: 1},
	}, nil)

	id, ok := idx.ResolveCall("Shared", CallerContext{FilePath: "other.go"})
	if !ok || id != "early" {
		t.Fatalf("expected deterministic tie-break to pick 'early', got (%q, %v)", id, ok)
	}
}

func TestResolveSuperclassRestrictedToClassKinds(t *testing.T) {
	idx := New()
	idx.AddFile("pkg/c.go", []string{"demo.pkg"}, []Symbol{
		{ElementID: "fn1", QualifiedName: "demo.pkg.Base", Kind: "Function", FilePath: "pkg/c.go", ByteOffset: 1},
		{ElementID: "cls1", QualifiedName: "demo.pkg.Base", Kind: "Class", FilePath: "pkg/c.go", ByteOffset: 50},
	}, nil)

	id, ok := idx.ResolveSuperclass("Base", CallerContext{FilePath: "pkg/d.go"})
	if !ok || id != "cls1" {
		t.Fatalf("ResolveSuperclass = (%q, %v), want (cls1, true) — function shouldn't shadow the class", id, ok)
	}
}

func TestRemoveFileClearsSymbols(t *testing.T) {
	idx := New()
	idx.AddFile("pkg/a.go", []string{"demo.pkg"}, []Symbol{
		{ElementID: "id1", QualifiedName: "demo.pkg.Helper", Kind: "Function", FilePath: "pkg/a.go", ByteOffset: 10},
	}, nil)
	idx.RemoveFile("pkg/a.go")

	if _, ok := idx.Exact("demo.pkg.Helper"); ok {
		t.Error("expected symbol to be removed")
	}
	if _, ok := idx.FileForModule("demo.pkg"); ok {
		t.Error("expected module path to be removed")
	}
	if len(idx.ByName("Helper")) != 0 {
		t.Error("expected byName index to be cleared")
	}
}

func TestModulePathCollisionShortestPathWins(t *testing.T) {
	idx := New()
	idx.AddFile("pkg/deep/nested/mod.go", []string{"demo.shared"}, nil, nil)
	idx.AddFile("pkg/mod.go", []string{"demo.shared"}, nil, nil)

	f, ok := idx.FileForModule("demo.shared")
	if !ok || f != "pkg/mod.go" {
		t.Fatalf("FileForModule = (%q, %v), want (pkg/mod.go, true)", f, ok)
	}
}
