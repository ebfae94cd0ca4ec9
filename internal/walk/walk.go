// Package walk traverses a repository root, honoring .gitignore and a
// built-in set of defaults, and yields the file list the indexing pipeline
// parses in parallel.
package walk

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"graphcore/internal/lang"
)

// ignoreDirs are directory names skipped unconditionally, regardless of
// .gitignore contents — VCS metadata, caches and common dependency dirs.
var ignoreDirs = map[string]bool{
	".git": true, ".hg": true, ".svn": true,
	".venv": true, "venv": true, "env": true,
	"__pycache__": true, ".mypy_cache": true, ".pytest_cache": true, ".ruff_cache": true, ".tox": true,
	"node_modules": true, ".pnpm-store": true, "bower_components": true,
	"target": true, "build": true, "dist": true, "out": true, "bin": true, "obj": true,
	".gradle": true, ".idea": true, ".vscode": true, ".vs": true,
	"vendor": true, ".cache": true, "coverage": true,
}

// ignoreSuffixes are file suffixes skipped unconditionally — build
// artifacts and editor backups, never source.
var ignoreSuffixes = []string{
	".pyc", ".pyo", ".o", ".a", ".so", ".dll", ".class", ".tmp", "~",
}

// File is a discovered source file, already mapped to its language tag.
type File struct {
	Path     string // absolute path
	RelPath  string // repository-relative, forward-slash separated
	Language lang.Language
}

// Options configures a walk.
type Options struct {
	// GitignorePath overrides the default <root>/.gitignore location.
	// A missing file is not an error; it simply disables pattern matching.
	GitignorePath string

	// IgnoreHidden skips dotfiles and dot-directories (besides the
	// unconditional VCS-metadata entries in ignoreDirs). Defaults to true
	// when Options is nil.
	IgnoreHidden bool

	// RespectVCSIgnore disables .gitignore matching entirely when false.
	// Defaults to true when Options is nil.
	RespectVCSIgnore bool

	// ExtraIgnoreGlobs are additional shell globs (matched against the
	// repository-relative path) to skip, beyond .gitignore and defaults.
	ExtraIgnoreGlobs []string

	// Languages restricts the walk to the given language tags, by name
	// (see lang.Language). Empty means no restriction.
	Languages []string
}

func defaultOptions() *Options {
	return &Options{IgnoreHidden: true, RespectVCSIgnore: true}
}

// Walk discovers every file under root whose extension is recognized by
// internal/lang, skipping directories and files matched by ignoreDirs,
// ignoreSuffixes, or .gitignore. It checks ctx for cancellation between
// directory entries so a caller can abort a walk over a very large tree.
func Walk(ctx context.Context, root string, opts *Options) ([]File, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = defaultOptions()
	}

	var matcher *gitignore.GitIgnore
	if opts.RespectVCSIgnore {
		ignorePath := filepath.Join(root, ".gitignore")
		if opts.GitignorePath != "" {
			ignorePath = opts.GitignorePath
		}
		matcher, _ = gitignore.CompileIgnoreFile(ignorePath)
	}

	languages := make(map[string]bool, len(opts.Languages))
	for _, l := range opts.Languages {
		languages[l] = true
	}

	var files []File
	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if path != root && (ignoreDirs[info.Name()] || matched(matcher, rel) || (opts.IgnoreHidden && isHidden(info.Name()))) {
				return filepath.SkipDir
			}
			return nil
		}

		if opts.IgnoreHidden && isHidden(info.Name()) {
			return nil
		}
		for _, suffix := range ignoreSuffixes {
			if strings.HasSuffix(path, suffix) {
				return nil
			}
		}
		if matched(matcher, rel) {
			return nil
		}
		if matchedAny(opts.ExtraIgnoreGlobs, rel) {
			return nil
		}

		l, ok := lang.ForPath(filepath.Ext(path))
		if !ok {
			return nil
		}
		if len(languages) > 0 && !languages[string(l)] {
			return nil
		}
		files = append(files, File{Path: path, RelPath: rel, Language: l})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func matchedAny(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, _ := filepath.Match(g, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

func matched(m *gitignore.GitIgnore, rel string) bool {
	if m == nil {
		return false
	}
	return m.MatchesPath(rel)
}
