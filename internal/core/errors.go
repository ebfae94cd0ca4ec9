package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions with no associated data.
var (
	ErrNotIndexed              = errors.New("core: repository has not been built")
	ErrInvalidPath             = errors.New("core: invalid path")
	ErrSnapshotVersionMismatch = errors.New("core: snapshot version mismatch")
)

// NotFoundError reports a query against an element ID with no matching node.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("core: not found: %s", e.ID)
}

// ParseError wraps a per-file parse failure. Bulk indexing collects these
// rather than aborting; they surface via Stats().Errors.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("core: parse error in %s: %s", e.Path, e.Message)
}

// UnsupportedLanguageError reports a file whose extension has no registered
// language spec.
type UnsupportedLanguageError struct {
	Path string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("core: unsupported language for %s", e.Path)
}

// IoError wraps a filesystem failure encountered while indexing or updating.
type IoError struct {
	Path    string
	Message string
}

func (e *IoError) Error() string {
	return fmt.Sprintf("core: io error on %s: %s", e.Path, e.Message)
}
