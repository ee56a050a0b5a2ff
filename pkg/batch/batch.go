// Package batch scans many source files concurrently. Every file gets its
// own scanner; only the read-only loader is shared between goroutines.
package batch

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/agenthands/rvlex/pkg/compiler/lexer"
	"github.com/agenthands/rvlex/pkg/diag"
	"github.com/agenthands/rvlex/pkg/source"
)

// Loader loads a source file by path.
type Loader interface {
	Load(path string) (*source.File, error)
}

type Options struct {
	// Workers bounds concurrent scans. Zero means GOMAXPROCS.
	Workers int
}

type Result struct {
	File        *source.File
	Tokens      []lexer.Token
	Diagnostics []*diag.Diagnostic
}

// ErrorCount returns the number of lexical errors in the file.
func (r *Result) ErrorCount() int {
	return len(r.Diagnostics)
}

// Scan loads and tokenizes every path. Results keep the order of paths.
// The first load failure cancels files that have not started and is
// returned; lexical errors never fail the batch.
func Scan(ctx context.Context, loader Loader, paths []string, opts Options) ([]*Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			f, err := loader.Load(path)
			if err != nil {
				return errors.Wrapf(err, "lexer failed on %s", path)
			}
			results[i] = ScanFile(f)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ScanFile tokenizes an already loaded file.
func ScanFile(f *source.File) *Result {
	tokens := lexer.Tokenize(f.Content)
	return &Result{
		File:        f,
		Tokens:      tokens,
		Diagnostics: diag.FromTokens(f.Path, tokens),
	}
}
