package ivcurve

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// GroupResult is the outcome of fitting one sensor's sweep.
type GroupResult[R any] struct {
	Sensor string
	Result R
	Err    error
}

// FitGroups applies fn to every sweep on at most workers goroutines
// (workers <= 0 means one per sweep). Results keep the order of sweeps and
// per-sweep errors are reported in GroupResult.Err. Only a cancelled ctx
// stops the remaining fits.
func FitGroups[R any](ctx context.Context, sweeps []Sweep, workers int, fn func(Sweep) (R, error)) ([]GroupResult[R], error) {
	out := make([]GroupResult[R], len(sweeps))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for k, s := range sweeps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := fn(s)
			out[k] = GroupResult[R]{Sensor: s.Sensor, Result: res, Err: err}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
