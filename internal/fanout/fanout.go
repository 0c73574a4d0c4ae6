// Package fanout runs independent per-item work concurrently and gathers the
// results in input order.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map calls fn for every item concurrently and returns the results in the
// order of items. All units are dispatched up front; limit <= 0 means no cap.
// fn reports failures through its result, so one item never cancels another.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	} else {
		g.SetLimit(-1)
	}

	for i, item := range items {
		g.Go(func() error {
			results[i] = fn(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Each is Map without results
func Each[T any](ctx context.Context, items []T, limit int, fn func(context.Context, T)) {
	Map(ctx, items, limit, func(ctx context.Context, item T) struct{} {
		fn(ctx, item)
		return struct{}{}
	})
}
