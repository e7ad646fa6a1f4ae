package pathfinding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/tilepath/internal/geo"
)

// Result pairs a route with its per-query error.
type Result struct {
	Route Route
	Err   error
}

// FindAll runs the queries concurrently, each worker borrowing its own
// Finder from pool, and returns results in query order. A query that fails
// is reported in its Result; only context cancellation fails the batch.
// workers <= 0 means one goroutine per query.
//
// r is shared by every worker, so it must not change during the batch: pass
// a geo.Snapshot.
func FindAll(ctx context.Context, r geo.Reader, pool *Pool, queries []Query, workers int) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f := pool.Get()
			defer pool.Put(f)

			route, err := f.FindPath(r, queries[i])
			results[i] = Result{Route: route, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("finding %d paths: %w", len(queries), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("finding %d paths: %w", len(queries), err)
	}

	slog.Debug("path batch done",
		"queries", len(queries),
		"workers", workers,
		"elapsed", time.Since(start))
	return results, nil
}
