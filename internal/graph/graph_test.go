package graph

import "testing"

func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func mustUpsert(t *testing.T, g *Graph, n *Node) int64 {
	t.Helper()
	h, err := g.UpsertNode(n)
	if err != nil {
		t.Fatalf("UpsertNode(%s): %v", n.ElementID, err)
	}
	return h
}

func TestUpsertNodeIsIdempotentByElementID(t *testing.T) {
	g := newTestGraph(t)
	n := &Node{ElementID: "e1", Kind: "Function", Name: "foo", QualifiedName: "pkg.foo", FilePath: "pkg/a.go"}
	h1 := mustUpsert(t, g, n)

	n.Name = "renamed"
	h2 := mustUpsert(t, g, n)
	if h1 != h2 {
		t.Fatalf("expected same handle on re-upsert, got %d and %d", h1, h2)
	}

	got, err := g.FindNodeByHandle(h1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "renamed" {
		t.Fatalf("expected updated name, got %q", got.Name)
	}
}

func TestInsertEdgeDedups(t *testing.T) {
	g := newTestGraph(t)
	a := mustUpsert(t, g, &Node{ElementID: "a", Kind: "Function", Name: "a", QualifiedName: "pkg.a", FilePath: "f.go"})
	b := mustUpsert(t, g, &Node{ElementID: "b", Kind: "Function", Name: "b", QualifiedName: "pkg.b", FilePath: "f.go"})

	for i := 0; i < 3; i++ {
		if err := g.InsertEdge(a, b, Calls); err != nil {
			t.Fatalf("InsertEdge: %v", err)
		}
	}
	n, err := g.CountEdges(Calls)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 deduped edge, got %d", n)
	}
}

func TestDeleteNodesByFileCascadesEdges(t *testing.T) {
	g := newTestGraph(t)
	a := mustUpsert(t, g, &Node{ElementID: "a", Kind: "Function", Name: "a", QualifiedName: "pkg.a", FilePath: "f.go"})
	b := mustUpsert(t, g, &Node{ElementID: "b", Kind: "Function", Name: "b", QualifiedName: "pkg.b", FilePath: "g.go"})
	if err := g.InsertEdge(a, b, Calls); err != nil {
		t.Fatal(err)
	}

	if err := g.DeleteNodesByFile("f.go"); err != nil {
		t.Fatal(err)
	}
	n, err := g.FindNodeByElementID("a")
	if err != nil {
		t.Fatal(err)
	}
	if n != nil {
		t.Fatal("expected node a to be deleted")
	}
	count, err := g.CountEdges(Calls)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("expected cascaded edge deletion, got %d edges remaining", count)
	}
}

func TestFindCallersAndCallees(t *testing.T) {
	g := newTestGraph(t)
	caller := mustUpsert(t, g, &Node{ElementID: "caller", Kind: "Function", Name: "caller", QualifiedName: "pkg.caller", FilePath: "f.go"})
	callee := mustUpsert(t, g, &Node{ElementID: "callee", Kind: "Function", Name: "callee", QualifiedName: "pkg.callee", FilePath: "f.go"})
	if err := g.InsertEdge(caller, callee, Calls); err != nil {
		t.Fatal(err)
	}

	callers, err := g.FindCallers("callee")
	if err != nil {
		t.Fatal(err)
	}
	if len(callers) != 1 || callers[0] != "caller" {
		t.Fatalf("FindCallers = %v, want [caller]", callers)
	}

	callees, err := g.FindCallees("caller")
	if err != nil {
		t.Fatal(err)
	}
	if len(callees) != 1 || callees[0] != "callee" {
		t.Fatalf("FindCallees = %v, want [callee]", callees)
	}
}

func TestGetSubclassesAndSuperclasses(t *testing.T) {
	g := newTestGraph(t)
	base := mustUpsert(t, g, &Node{ElementID: "base", Kind: "Class", Name: "Base", QualifiedName: "pkg.Base", FilePath: "f.go"})
	sub := mustUpsert(t, g, &Node{ElementID: "sub", Kind: "Class", Name: "Sub", QualifiedName: "pkg.Sub", FilePath: "f.go"})
	if err := g.InsertEdge(sub, base, Inherits); err != nil {
		t.Fatal(err)
	}

	subs, err := g.GetSubclasses("base")
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 || subs[0] != "sub" {
		t.Fatalf("GetSubclasses = %v, want [sub]", subs)
	}

	supers, err := g.GetSuperclasses("sub")
	if err != nil {
		t.Fatal(err)
	}
	if len(supers) != 1 || supers[0] != "base" {
		t.Fatalf("GetSuperclasses = %v, want [base]", supers)
	}
}

func TestFindPathShortestAndTieBreak(t *testing.T) {
	g := newTestGraph(t)
	// a -> b -> d  (length 2)
	// a -> c -> d  (length 2, 'b' < 'c' lexicographically so b-path wins)
	a := mustUpsert(t, g, &Node{ElementID: "a", Kind: "Function", Name: "a", QualifiedName: "pkg.a", FilePath: "f.go"})
	b := mustUpsert(t, g, &Node{ElementID: "b", Kind: "Function", Name: "b", QualifiedName: "pkg.b", FilePath: "f.go"})
	c := mustUpsert(t, g, &Node{ElementID: "c", Kind: "Function", Name: "c", QualifiedName: "pkg.c", FilePath: "f.go"})
	d := mustUpsert(t, g, &Node{ElementID: "d", Kind: "Function", Name: "d", QualifiedName: "pkg.d", FilePath: "f.go"})

	for _, e := range [][2]int64{{a, b}, {a, c}, {b, d}, {c, d}} {
		if err := g.InsertEdge(e[0], e[1], Calls); err != nil {
			t.Fatal(err)
		}
	}

	path, err := g.FindPath("a", "d", 5)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "d"}
	if len(path) != len(want) {
		t.Fatalf("FindPath = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("FindPath = %v, want %v", path, want)
		}
	}
}

func TestFindPathRespectsMaxDepth(t *testing.T) {
	g := newTestGraph(t)
	a := mustUpsert(t, g, &Node{ElementID: "a", Kind: "Function", Name: "a", QualifiedName: "pkg.a", FilePath: "f.go"})
	b := mustUpsert(t, g, &Node{ElementID: "b", Kind: "Function", Name: "b", QualifiedName: "pkg.b", FilePath: "f.go"})
	c := mustUpsert(t, g, &Node{ElementID: "c", Kind: "Function", Name: "c", QualifiedName: "pkg.c", FilePath: "f.go"})
	if err := g.InsertEdge(a, b, Calls); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertEdge(b, c, Calls); err != nil {
		t.Fatal(err)
	}

	path, err := g.FindPath("a", "c", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 0 {
		t.Fatalf("expected no path within depth 1, got %v", path)
	}
}

func TestGetRelatedExcludesSelfAndRespectsHops(t *testing.T) {
	g := newTestGraph(t)
	a := mustUpsert(t, g, &Node{ElementID: "a", Kind: "Function", Name: "a", QualifiedName: "pkg.a", FilePath: "f.go"})
	b := mustUpsert(t, g, &Node{ElementID: "b", Kind: "Function", Name: "b", QualifiedName: "pkg.b", FilePath: "f.go"})
	c := mustUpsert(t, g, &Node{ElementID: "c", Kind: "Function", Name: "c", QualifiedName: "pkg.c", FilePath: "f.go"})
	if err := g.InsertEdge(a, b, Calls); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertEdge(b, c, Calls); err != nil {
		t.Fatal(err)
	}

	related, err := g.GetRelated("a", 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(related) != 1 || related[0] != "b" {
		t.Fatalf("GetRelated(hops=1) = %v, want [b]", related)
	}

	related, err = g.GetRelated("a", 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(related) != 2 || related[0] != "b" || related[1] != "c" {
		t.Fatalf("GetRelated(hops=2) = %v, want [b c]", related)
	}
}

func TestStats(t *testing.T) {
	g := newTestGraph(t)
	a := mustUpsert(t, g, &Node{ElementID: "a", Kind: "File", Name: "a.go", QualifiedName: "pkg.a", FilePath: "a.go"})
	b := mustUpsert(t, g, &Node{ElementID: "b", Kind: "Function", Name: "b", QualifiedName: "pkg.b", FilePath: "a.go"})
	if err := g.InsertEdge(a, b, Defines); err != nil {
		t.Fatal(err)
	}

	st, err := g.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.NodeCount != 2 || st.EdgeCount != 1 || st.FileCount != 1 {
		t.Fatalf("Stats = %+v, unexpected counts", st)
	}
	if st.ByKind["File"] != 1 || st.ByKind["Function"] != 1 {
		t.Fatalf("Stats.ByKind = %+v, unexpected breakdown", st.ByKind)
	}
}

func TestGetSourceAndListFileElementIDs(t *testing.T) {
	g := newTestGraph(t)
	mustUpsert(t, g, &Node{ElementID: "file1", Kind: "File", Name: "b.go", QualifiedName: "pkg.b", FilePath: "b.go", Snippet: "package pkg"})
	mustUpsert(t, g, &Node{ElementID: "file2", Kind: "File", Name: "a.go", QualifiedName: "pkg.a", FilePath: "a.go", Snippet: "package pkg"})

	src, err := g.GetSource("file1")
	if err != nil {
		t.Fatal(err)
	}
	if src != "package pkg" {
		t.Fatalf("GetSource = %q", src)
	}

	ids, err := g.ListFileElementIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 || ids[0] != "file1" || ids[1] != "file2" {
		t.Fatalf("ListFileElementIDs = %v, want sorted [file1 file2]", ids)
	}
}
