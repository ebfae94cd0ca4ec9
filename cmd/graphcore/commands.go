package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"graphcore/internal/config"
	"graphcore/internal/core"
	"graphcore/internal/graph"
)

func runIndex(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	project := fs.String("project", "project", "project name, used as the qualified-name root")
	out := fs.String("out", "graphcore.snapshot", "path to write the snapshot to")
	configPath := fs.String("config", ".graphcore.yml", "path to an optional build-options file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("index requires exactly one argument: the repository root")
	}
	root := fs.Arg(0)

	opts, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	h, err := core.Build(ctx, *project, root, opts, "")
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	defer h.Close()

	if _, err := h.Snapshot(*out); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	stats, err := h.Stats()
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	fmt.Printf("indexed %d files, %d nodes, %d edges into %s\n", stats.FileCount, stats.NodeCount, stats.EdgeCount, *out)
	for _, e := range stats.Errors {
		fmt.Fprintln(os.Stderr, "parse error:", e)
	}
	return nil
}

func loadSnapshot(fs *flag.FlagSet) (*core.RepoHandle, error) {
	project := fs.Lookup("project").Value.String()
	snapPath := fs.Lookup("snapshot").Value.String()
	root := ""
	if r := fs.Lookup("root"); r != nil {
		root = r.Value.String()
	}
	if snapPath == "" {
		return nil, fmt.Errorf("--snapshot is required")
	}
	data, err := os.ReadFile(snapPath)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return core.Load(project, root, snapPath, data)
}

func newQueryFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.String("project", "project", "project name")
	fs.String("snapshot", "", "path to a snapshot produced by 'index'")
	fs.String("root", "", "repository root, needed only by 'update'")
	return fs
}

func printIDs(ids []string) {
	for _, id := range ids {
		fmt.Println(id)
	}
}

func runStats(args []string) error {
	fs := newQueryFlagSet("stats")
	if err := fs.Parse(args); err != nil {
		return err
	}
	h, err := loadSnapshot(fs)
	if err != nil {
		return err
	}
	defer h.Close()
	stats, err := h.Stats()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

func runSearch(args []string) error {
	fs := newQueryFlagSet("search")
	limit := fs.Int("limit", 10, "maximum number of results")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("search requires exactly one argument: the query text")
	}
	h, err := loadSnapshot(fs)
	if err != nil {
		return err
	}
	defer h.Close()
	results, err := h.Search(fs.Arg(0), *limit)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("%.4f\t%s\n", r.Score, r.ElementID)
	}
	return nil
}

type neighborFunc func(h *core.RepoHandle, id string) ([]string, error)

func neighborsCallers(h *core.RepoHandle, id string) ([]string, error) { return h.FindCallers(id) }
func neighborsCallees(h *core.RepoHandle, id string) ([]string, error) { return h.FindCallees(id) }

func runNeighbors(args []string, fn neighborFunc) error {
	fs := newQueryFlagSet("neighbors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument: the element id")
	}
	h, err := loadSnapshot(fs)
	if err != nil {
		return err
	}
	defer h.Close()
	ids, err := fn(h, fs.Arg(0))
	if err != nil {
		return err
	}
	printIDs(ids)
	return nil
}

func runRelated(args []string) error {
	fs := newQueryFlagSet("related")
	hops := fs.Int("hops", 1, "maximum number of hops")
	kindsFlag := fs.String("kinds", "", "comma-separated edge kinds to follow (default: all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("related requires exactly one argument: the element id")
	}
	h, err := loadSnapshot(fs)
	if err != nil {
		return err
	}
	defer h.Close()

	var kinds []graph.EdgeKind
	if *kindsFlag != "" {
		for _, k := range strings.Split(*kindsFlag, ",") {
			kinds = append(kinds, graph.EdgeKind(strings.TrimSpace(k)))
		}
	}
	ids, err := h.GetRelated(fs.Arg(0), *hops, kinds)
	if err != nil {
		return err
	}
	printIDs(ids)
	return nil
}

func runPath(args []string) error {
	fs := newQueryFlagSet("path")
	maxDepth := fs.Int("max-depth", 10, "maximum path length in hops")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("path requires exactly two arguments: src and dst element ids")
	}
	h, err := loadSnapshot(fs)
	if err != nil {
		return err
	}
	defer h.Close()
	path, err := h.FindPath(fs.Arg(0), fs.Arg(1), *maxDepth)
	if err != nil {
		return err
	}
	if path == nil {
		fmt.Println("no path found")
		return nil
	}
	fmt.Println(strings.Join(path, " -> "))
	return nil
}

func runSource(args []string) error {
	fs := newQueryFlagSet("source")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("source requires exactly one argument: the element id")
	}
	h, err := loadSnapshot(fs)
	if err != nil {
		return err
	}
	defer h.Close()
	src, err := h.GetSource(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Println(src)
	return nil
}

func runUpdate(ctx context.Context, args []string) error {
	fs := newQueryFlagSet("update")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("update requires exactly one argument: the file path to re-index")
	}
	root := fs.Lookup("root").Value.String()
	if root == "" {
		return fmt.Errorf("--root is required for update")
	}
	snapPath := fs.Lookup("snapshot").Value.String()

	h, err := loadSnapshot(fs)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.UpdateFile(ctx, fs.Arg(0), nil); err != nil {
		return fmt.Errorf("update file: %w", err)
	}
	if _, err := h.Snapshot(snapPath); err != nil {
		return fmt.Errorf("re-snapshot: %w", err)
	}
	fmt.Println("updated", fs.Arg(0))
	return nil
}
