package core

import (
	"context"
	"runtime"
	"sync"

	"github.com/sarchlab/tileconv/config"
	"golang.org/x/sync/errgroup"
)

// RunParallel computes the same result as Orchestrator.Run but spreads the
// spatial tiles over a pool of workers. Every worker owns a private set of
// buffers and processes whole tiles, so input blocks of one output block are
// still accumulated in order and output regions never overlap.
//
// ops.Output must accept concurrent Set calls on distinct elements, and
// ops.Input, ops.Weights and ops.Bias concurrent reads. In-memory tensors do.
// A workers value <= 0 uses GOMAXPROCS workers.
func RunParallel(ops Operands, cfg config.Config, workers int) (Stats, error) {
	l, err := ops.Layer()
	if err != nil {
		return Stats{}, err
	}
	if err := cfg.Validate(l); err != nil {
		return Stats{}, err
	}

	grid := cfg.Grid(l)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, grid.Tiles())

	g, ctx := errgroup.WithContext(context.Background())
	tiles := make(chan TileCoord)

	g.Go(func() error {
		defer close(tiles)

		for r := 0; r < grid.Rows; r++ {
			for c := 0; c < grid.Cols; c++ {
				select {
				case tiles <- TileCoord{Row: r, Col: c}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}

		return nil
	})

	var (
		mu    sync.Mutex
		total Stats
	)

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			exec, err := NewExecutor(ops, cfg)
			if err != nil {
				return err
			}
			defer func() {
				mu.Lock()
				total.Add(exec.Stats())
				mu.Unlock()
			}()

			for t := range tiles {
				cur := NewTileCursor(grid, t.Row, t.Col)
				for s, ok := cur.Next(); ok; s, ok = cur.Next() {
					if _, err := exec.Execute(s); err != nil {
						return err
					}
				}
			}

			return nil
		})
	}

	err = g.Wait()

	return total, err
}
