package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the settled outcome of one task.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Settle runs fn once per index concurrently and waits for every call to
// return. Results keep their index, so callers can scan them in the original
// order. A failing task never cancels its siblings.
func Settle[T any](ctx context.Context, n int, fn func(ctx context.Context, i int) (T, error)) []Result[T] {
	results := make([]Result[T], n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			value, err := fn(ctx, i)
			results[i] = Result[T]{Value: value, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// First returns the first successful result in index order for which accept
// returns true.
func First[T, U any](results []Result[T], accept func(T) (U, bool)) (U, bool) {
	for _, r := range results {
		if !r.OK() {
			continue
		}
		if u, ok := accept(r.Value); ok {
			return u, true
		}
	}
	var zero U
	return zero, false
}
