// Package core ties the walker, parser/extractors, Global Index, graph, and
// BM25 index into the engine's public surface: build a repository into a
// queryable RepoHandle, then keep it current with per-file updates.
package core

import (
	"context"
	"fmt"
	"sync"

	"graphcore/internal/bm25"
	"graphcore/internal/extract"
	"graphcore/internal/graph"
	"graphcore/internal/resolve"
)

// BuildOptions configures a Build call.
type BuildOptions struct {
	IgnoreHidden     bool
	RespectVCSIgnore bool
	ExtraIgnoreGlobs []string
	Languages        []string
}

// DefaultBuildOptions matches the engine's documented defaults.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{IgnoreHidden: true, RespectVCSIgnore: true}
}

// Stats summarizes the indexed repository, per the query contract's
// stats() operation, plus the error list parse failures are collected into.
type Stats struct {
	NodeCount int
	EdgeCount int
	FileCount int
	ByKind    map[string]int
	Errors    []string
}

// fileFacts is everything kept in memory about one indexed file, beyond
// what's in the graph, so incremental updates can re-resolve cross-file
// edges without re-parsing every other file.
type fileFacts struct {
	relPath  string
	moduleQN string
	result   *extract.Result
	qnToID   map[string]string // qualified name -> element ID, this file only
}

// RepoHandle is the engine's live, queryable view of one repository. All
// mutating operations (Build, UpdateFile, RemoveFile) take the single
// writer lock described in the concurrency model; queries take a shared
// reader lock, so they never observe a partially-applied update.
type RepoHandle struct {
	mu sync.RWMutex

	project string
	root    string

	graph  *graph.Graph
	index  *resolve.Index
	search *bm25.Index

	facts  map[string]*fileFacts // relPath -> facts
	errors []string

	built bool
}

// New returns an unbuilt handle. Call Build before issuing any queries.
func New(project string) *RepoHandle {
	return &RepoHandle{
		project: project,
		index:   resolve.New(),
		search:  bm25.New(),
		facts:   make(map[string]*fileFacts),
	}
}

// Close releases the underlying graph database.
func (h *RepoHandle) Close() error {
	if h.graph == nil {
		return nil
	}
	return h.graph.Close()
}

// Graph exposes the underlying graph for snapshot export.
func (h *RepoHandle) Graph() *graph.Graph {
	return h.graph
}

func (h *RepoHandle) checkBuilt() error {
	if !h.built {
		return ErrNotIndexed
	}
	return nil
}

func (h *RepoHandle) withReadLock(fn func() error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if err := h.checkBuilt(); err != nil {
		return err
	}
	return fn()
}

func wrapCancel(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("core: %w", err)
	}
	return nil
}
