// Package fqn computes qualified names and stable element IDs for code
// elements, so that re-indexing unchanged files reproduces the same IDs.
package fqn

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// Compute returns the canonical qualified name for an element.
// Format: <project>.<rel_path_parts_dotted>.<name>
// Examples:
//   - myproject.cmd.server.main.HandleRequest
//   - myproject.pkg.service.ProcessOrder
func Compute(project, relPath, name string) string {
	relPath = strings.TrimSuffix(relPath, filepath.Ext(relPath))
	parts := strings.Split(filepath.ToSlash(relPath), "/")

	// __init__.py and index.* files contribute their directory's name, not
	// their own, to the qualified name of anything they define.
	if len(parts) > 0 && parts[len(parts)-1] == "__init__" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "index" {
		parts = parts[:len(parts)-1]
	}

	all := append([]string{project}, parts...)
	if name != "" {
		all = append(all, name)
	}
	return strings.Join(all, ".")
}

// ModuleQN returns the qualified name of a file's module (no element name).
func ModuleQN(project, relPath string) string {
	return Compute(project, relPath, "")
}

// FolderQN returns the qualified name of a directory.
func FolderQN(project, relDir string) string {
	if relDir == "." || relDir == "" {
		return project
	}
	parts := strings.Split(filepath.ToSlash(relDir), "/")
	all := append([]string{project}, parts...)
	return strings.Join(all, ".")
}

// StableID derives the element's stable string ID from the file it's
// defined in, its qualified name, its kind, and the byte offset where its
// declaration starts. Hashing these four together means the ID survives
// re-indexing as long as the declaration's text position doesn't shift,
// while two same-named elements in different files or at different offsets
// never collide.
func StableID(filePath, qualifiedName, kind string, startByte uint) string {
	var b strings.Builder
	b.WriteString(filePath)
	b.WriteByte('\x00')
	b.WriteString(qualifiedName)
	b.WriteByte('\x00')
	b.WriteString(kind)
	b.WriteByte('\x00')
	b.WriteString(strconv.FormatUint(uint64(startByte), 10))

	sum := xxh3.HashString(b.String())
	return strconv.FormatUint(sum, 36)
}
