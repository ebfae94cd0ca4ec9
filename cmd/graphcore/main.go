// Command graphcore builds a structural code graph over a repository and
// answers queries against it from the command line.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("graphcore", version)
		os.Exit(0)
	}
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	var err error
	switch cmd {
	case "index":
		err = runIndex(context.Background(), args)
	case "stats":
		err = runStats(args)
	case "search":
		err = runSearch(args)
	case "callers":
		err = runNeighbors(args, neighborsCallers)
	case "callees":
		err = runNeighbors(args, neighborsCallees)
	case "related":
		err = runRelated(args)
	case "path":
		err = runPath(args)
	case "source":
		err = runSource(args)
	case "update":
		err = runUpdate(context.Background(), args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("graphcore: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: graphcore <command> [args]

commands:
  index   --project NAME --out SNAPSHOT <root>    build and save a snapshot
  stats   --project NAME --snapshot SNAPSHOT
  search  --project NAME --snapshot SNAPSHOT [--limit N] QUERY
  callers --project NAME --snapshot SNAPSHOT ELEMENT_ID
  callees --project NAME --snapshot SNAPSHOT ELEMENT_ID
  related --project NAME --snapshot SNAPSHOT --hops N ELEMENT_ID
  path    --project NAME --snapshot SNAPSHOT --max-depth N SRC_ID DST_ID
  source  --project NAME --snapshot SNAPSHOT ELEMENT_ID
  update  --project NAME --snapshot SNAPSHOT --root ROOT PATH`)
}
