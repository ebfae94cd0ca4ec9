package walk

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkFindsSourceFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, "pkg", "util.py"), "def f(): pass\n")
	writeFile(t, filepath.Join(root, "README.md"), "# hi\n")
	writeFile(t, filepath.Join(root, "node_modules", "lib.js"), "module.exports = 1\n")
	writeFile(t, filepath.Join(root, ".git", "config"), "[core]\n")

	files, err := Walk(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelPath)
	}
	want := map[string]bool{"main.go": true, "pkg/util.py": true}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d: %v", len(want), len(files), rels)
	}
	for _, r := range rels {
		if !want[r] {
			t.Errorf("unexpected file in walk result: %s", r)
		}
	}
}

func TestWalkHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "generated/\n*.gen.go\n")
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, "generated", "api.go"), "package generated\n")
	writeFile(t, filepath.Join(root, "models.gen.go"), "package main\n")

	files, err := Walk(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "main.go" {
		t.Fatalf("expected only main.go, got %v", files)
	}
}

func TestWalkRespectsCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Walk(ctx, root, nil)
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
}
