// Package driver orchestrates batch rendering of IR modules: parallel
// dumps over a fixture set and an optional on-disk cache of rendered
// text.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"lattice/internal/fixture"
	"lattice/internal/ir"
)

// RenderResult is the rendered text of one module.
type RenderResult struct {
	Name string
	Text string
}

// Options configures a batch render.
type Options struct {
	// Jobs caps render parallelism; <= 0 means GOMAXPROCS.
	Jobs int

	// Ops is passed through to the printer.
	Ops *ir.OpRegistry
}

// RenderAll renders every fixture concurrently. Each render uses its own
// map table and numberer, so the only shared state is the read-only IR.
// Results keep the input order regardless of completion order.
func RenderAll(ctx context.Context, fixtures []fixture.Fixture, opts Options) ([]RenderResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]RenderResult, len(fixtures))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(fixtures), 1)))

	for i, fx := range fixtures {
		i, fx := i, fx
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = RenderResult{
				Name: fx.Name,
				Text: ir.ModuleString(fx.Module, fx.TypesIn, ir.DumpOptions{Ops: opts.Ops}),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Selfcheck renders every fixture twice with fresh printer state and
// fails when the two dumps are not byte-identical. Id assignment is
// deterministic, so any difference means the printer leaked state.
func Selfcheck(ctx context.Context, fixtures []fixture.Fixture, opts Options) error {
	first, err := RenderAll(ctx, fixtures, opts)
	if err != nil {
		return err
	}
	second, err := RenderAll(ctx, fixtures, opts)
	if err != nil {
		return err
	}

	for i := range first {
		if first[i].Text != second[i].Text {
			return fmt.Errorf("fixture %s: repeated dumps differ", first[i].Name)
		}
	}
	return nil
}
