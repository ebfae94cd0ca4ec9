package bm25

import (
	"reflect"
	"testing"
)

func TestTokenizeCamelAndSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"HTTPServerConfig", []string{"http", "server", "config"}},
		{"handle_request", []string{"handle", "request"}},
		{"getHTML", []string{"get", "html"}},
		{"a.b_c", nil}, // single-letter tokens dropped
	}
	for _, tt := range tests {
		got := Tokenize(tt.in)
		if !reflect.DeepEqual(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSearchRanksNameMatchAboveSnippetMatch(t *testing.T) {
	idx := New()
	idx.AddDocument(Document{ElementID: "exact", Name: "ParseConfig", QualifiedName: "pkg.ParseConfig", Snippet: "func ParseConfig() {}"})
	idx.AddDocument(Document{ElementID: "incidental", Name: "Unrelated", QualifiedName: "pkg.Unrelated", Snippet: "calls ParseConfig internally for setup"})

	results := idx.Search("ParseConfig", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ElementID != "exact" {
		t.Fatalf("expected name match to rank first, got %q", results[0].ElementID)
	}
}

func TestSearchOrderingIsDeterministicOnTie(t *testing.T) {
	idx := New()
	idx.AddDocument(Document{ElementID: "b", Name: "widget", QualifiedName: "pkg.widget", Snippet: ""})
	idx.AddDocument(Document{ElementID: "a", Name: "widget", QualifiedName: "pkg.widget", Snippet: ""})

	results := idx.Search("widget", 10)
	if len(results) != 2 || results[0].ElementID != "a" || results[1].ElementID != "b" {
		t.Fatalf("expected tie-break by ascending element ID, got %v", results)
	}
}

func TestRemoveDocumentDropsFromResults(t *testing.T) {
	idx := New()
	idx.AddDocument(Document{ElementID: "gone", Name: "widget", QualifiedName: "pkg.widget"})
	idx.RemoveDocument("gone")

	if idx.DocCount() != 0 {
		t.Fatalf("expected doc count 0 after removal, got %d", idx.DocCount())
	}
	if results := idx.Search("widget", 10); len(results) != 0 {
		t.Fatalf("expected no results after removal, got %v", results)
	}
}

func TestAddDocumentReplacesPriorVersion(t *testing.T) {
	idx := New()
	idx.AddDocument(Document{ElementID: "e1", Name: "alpha"})
	idx.AddDocument(Document{ElementID: "e1", Name: "beta"})

	if len(idx.Search("alpha", 10)) != 0 {
		t.Fatal("expected stale term 'alpha' to be gone after re-indexing")
	}
	if len(idx.Search("beta", 10)) != 1 {
		t.Fatal("expected updated term 'beta' to be indexed")
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	idx := New()
	for _, id := range []string{"a", "b", "c"} {
		idx.AddDocument(Document{ElementID: id, Name: "widget"})
	}
	results := idx.Search("widget", 2)
	if len(results) != 2 {
		t.Fatalf("expected limit of 2 results, got %d", len(results))
	}
}
