// Copyright ktanaka, 2026. All rights reserved.

package patentxml

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/ktanaka/patentprep/pkg/types"
)

// Result is one file's parse outcome. Err is set when the file was skipped.
type Result struct {
	Path   string
	Patent types.Patent
	Err    error
}

// ParseDir parses every XML file under dir (recursively) and returns the
// per-file outcomes in path order. A file that fails to parse produces a
// warning on w and is skipped; one corrupt publication never aborts the
// batch. Parsing runs as a bounded parallel map across files since
// publications are independent of each other.
func ParseDir(ctx context.Context, dir string, cfg types.ParseConfig, w io.Writer) ([]Result, error) {
	paths, err := doublestar.Glob(os.DirFS(dir), "**/*.xml")
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no XML files found under %s", dir)
	}
	sort.Strings(paths)

	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	results := make([]Result, len(paths))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rel := range paths {
		i, rel := i, rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			full := filepath.Join(dir, rel)
			p, err := ParseFile(full, cfg)
			if err != nil {
				mu.Lock()
				fmt.Fprintf(w, "warning: skipping %s: %v\n", rel, err)
				mu.Unlock()
				results[i] = Result{Path: full, Err: err}
				return nil
			}
			results[i] = Result{Path: full, Patent: p}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Patents extracts the successfully parsed publications in order.
func Patents(results []Result) []types.Patent {
	out := make([]types.Patent, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Patent)
		}
	}
	return out
}

// CountSkipped returns how many files failed to parse.
func CountSkipped(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
