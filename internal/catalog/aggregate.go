package catalog

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Primary describes the record a view is built around.
type Primary[P any] struct {
	Kind  string
	ID    uint
	Fetch func(ctx context.Context) (*P, error)
}

// Query is an independent secondary lookup joined into a view.
type Query func(ctx context.Context) (any, error)

// Queries maps result names to queries.
type Queries map[string]Query

// Results holds the named outcomes of a set of Queries.
type Results map[string]any

// Result is a primary record joined with its secondary results.
type Result[P any] struct {
	Primary *P
	Results Results
}

// Take returns the named result as T, or T's zero value when the name is
// unknown or holds a different type.
func Take[T any](results Results, name string) T {
	v, _ := results[name].(T)
	return v
}

// Aggregate runs the primary fetch and every query concurrently and joins them.
//
// The first store error cancels the others and is returned without a partial
// result. If the primary record is absent the secondary results are discarded
// and a *NotFoundError is returned.
func Aggregate[P any](ctx context.Context, primary Primary[P], queries Queries) (*Result[P], error) {
	g, gctx := errgroup.WithContext(ctx)

	var record *P
	g.Go(func() error {
		p, err := primary.Fetch(gctx)
		if err != nil {
			return fmt.Errorf("failed to fetch %s %d: %w", primary.Kind, primary.ID, err)
		}
		record = p
		return nil
	})

	results := spawn(gctx, g, queries)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, notFound(primary.Kind, primary.ID)
	}
	return &Result[P]{Primary: record, Results: results}, nil
}

// Gather runs named queries concurrently with the same failure rules as Aggregate.
func Gather(ctx context.Context, queries Queries) (Results, error) {
	g, gctx := errgroup.WithContext(ctx)
	results := spawn(gctx, g, queries)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// spawn starts one goroutine per query. The returned map is complete once g.Wait returns.
func spawn(ctx context.Context, g *errgroup.Group, queries Queries) Results {
	results := make(Results, len(queries))
	var mu sync.Mutex

	for name, query := range queries {
		g.Go(func() error {
			v, err := query(ctx)
			if err != nil {
				return fmt.Errorf("query %q failed: %w", name, err)
			}
			mu.Lock()
			results[name] = v
			mu.Unlock()
			return nil
		})
	}
	return results
}
