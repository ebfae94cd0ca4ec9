package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !opts.IgnoreHidden || !opts.RespectVCSIgnore {
		t.Errorf("Load of missing file = %+v, want defaults", opts)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".graphcore.yml")
	content := "ignore_hidden: false\nextra_ignore_globs:\n  - \"*.gen.go\"\nlanguages:\n  - go\n  - python\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.IgnoreHidden {
		t.Error("expected ignore_hidden: false to override the default")
	}
	if !opts.RespectVCSIgnore {
		t.Error("expected respect_vcs_ignore to keep its default of true")
	}
	if len(opts.ExtraIgnoreGlobs) != 1 || opts.ExtraIgnoreGlobs[0] != "*.gen.go" {
		t.Errorf("ExtraIgnoreGlobs = %v, want [*.gen.go]", opts.ExtraIgnoreGlobs)
	}
	if len(opts.Languages) != 2 {
		t.Errorf("Languages = %v, want 2 entries", opts.Languages)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".graphcore.yml")
	if err := os.WriteFile(path, []byte("ignore_hidden: [this is not a bool"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}
