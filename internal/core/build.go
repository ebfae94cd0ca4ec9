package core

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"graphcore/internal/extract"
	"graphcore/internal/fqn"
	"graphcore/internal/graph"
	"graphcore/internal/walk"
)

type parsedFile struct {
	file   walk.File
	result *extract.Result
	err    error
}

// Build walks root, parses every recognized file in parallel, then folds
// the results into the graph in a single deterministic pass: nodes first,
// then Defines edges, then Imports/Calls/Inherits/Implements resolved
// through the Global Index. Parse failures are collected, not raised.
func Build(ctx context.Context, project, root string, opts BuildOptions, storePath string) (*RepoHandle, error) {
	files, err := walk.Walk(ctx, root, &walk.Options{
		IgnoreHidden:     opts.IgnoreHidden,
		RespectVCSIgnore: opts.RespectVCSIgnore,
		ExtraIgnoreGlobs: opts.ExtraIgnoreGlobs,
		Languages:        opts.Languages,
	})
	if err != nil {
		return nil, fmt.Errorf("core: walk: %w", err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })

	if storePath == "" {
		storePath = ":memory:"
	}
	g, err := graph.Open(storePath)
	if err != nil {
		return nil, fmt.Errorf("core: open graph: %w", err)
	}

	h := New(project)
	h.root = root
	h.graph = g

	parsed, err := parseAll(ctx, project, files)
	if err != nil {
		g.Close()
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ingest(parsed); err != nil {
		g.Close()
		return nil, err
	}
	h.built = true
	return h, nil
}

// parseAll parses every file concurrently (CPU-bound, no shared state) and
// returns results in file order, regardless of completion order.
func parseAll(ctx context.Context, project string, files []walk.File) ([]parsedFile, error) {
	results := make([]parsedFile, len(files))
	numWorkers := runtime.NumCPU()
	if numWorkers > len(files) {
		numWorkers = len(files)
	}
	if numWorkers == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for i, f := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = parseOne(project, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	return results, nil
}

func parseOne(project string, f walk.File) parsedFile {
	source, err := os.ReadFile(f.Path)
	if err != nil {
		return parsedFile{file: f, err: &IoError{Path: f.RelPath, Message: err.Error()}}
	}
	result, err := extract.ParseFile(project, f.RelPath, source, f.Language)
	if err != nil {
		return parsedFile{file: f, err: &ParseError{Path: f.RelPath, Message: err.Error()}}
	}
	return parsedFile{file: f, result: result}
}

// ingest folds a parsed-file batch into an already-open, empty graph. Must
// be called with the writer lock held.
func (h *RepoHandle) ingest(parsed []parsedFile) error {
	return h.graph.WithTransaction(func(tx *graph.Graph) error {
		origGraph := h.graph
		h.graph = tx
		defer func() { h.graph = origGraph }()

		for _, p := range parsed {
			if p.err != nil {
				h.errors = append(h.errors, p.err.Error())
				continue
			}
			if err := h.insertFileNodes(p.file, p.result); err != nil {
				return err
			}
		}
		for _, p := range parsed {
			if p.err != nil {
				continue
			}
			if err := h.resolveFileEdges(p.file.RelPath); err != nil {
				return err
			}
		}
		return nil
	})
}

// insertFileNodes upserts one file's nodes and Defines edges, registers its
// symbols in the Global Index, indexes its documents for search, and caches
// its facts for later incremental re-resolution.
func (h *RepoHandle) insertFileNodes(f walk.File, res *extract.Result) error {
	handles := make(map[string]int64, len(res.Elements))
	qnToID := make(map[string]string, len(res.Elements))

	for i := range res.Elements {
		el := &res.Elements[i]
		handle, err := h.graph.UpsertNode(&graph.Node{
			ElementID:     el.ID,
			Kind:          el.Kind,
			Name:          el.Name,
			QualifiedName: el.QualifiedName,
			FilePath:      el.FilePath,
			Language:      string(el.Language),
			StartByte:     el.StartByte,
			EndByte:       el.EndByte,
			StartLine:     el.StartLine,
			EndLine:       el.EndLine,
			Snippet:       el.Snippet,
			IsExported:    el.IsExported,
		})
		if err != nil {
			return fmt.Errorf("core: insert node %s: %w", el.ID, err)
		}
		handles[el.ID] = handle
		qnToID[el.QualifiedName] = el.ID
	}

	for _, el := range res.Elements {
		parentID := el.ParentID
		if parentID == "" && el.ParentQN != "" {
			parentID = qnToID[el.ParentQN]
		}
		if parentID == "" {
			continue
		}
		parentHandle, ok := handles[parentID]
		if !ok {
			continue
		}
		if err := h.graph.InsertEdge(parentHandle, handles[el.ID], graph.Defines); err != nil {
			return fmt.Errorf("core: insert defines edge: %w", err)
		}
	}

	moduleQN := fqn.ModuleQN(h.project, f.RelPath)
	folderQN := fqn.FolderQN(h.project, dirOf(f.RelPath))
	h.index.AddFile(f.RelPath, []string{moduleQN, folderQN}, symbolsFor(res), exportedSetFor(res))

	for _, el := range res.Elements {
		h.search.AddDocument(documentFor(el))
	}

	h.facts[f.RelPath] = &fileFacts{relPath: f.RelPath, moduleQN: moduleQN, result: res, qnToID: qnToID}
	return nil
}
