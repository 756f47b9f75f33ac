// Package batch executes independent asynchronous work items in fixed-size
// concurrent groups with a pacing delay between groups. Batching is the only
// rate-limit mechanism the pipeline uses: group size bounds outstanding
// requests and the inter-batch delay paces them.
package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Default scheduling values.
const (
	DefaultBatchSize       = 10
	DefaultInterBatchDelay = time.Second
)

// Config holds batch scheduling parameters.
type Config struct {
	batchSize       int
	interBatchDelay time.Duration
}

// NewConfig creates a Config. A batch size below 1 is clamped to 1; a
// negative delay is clamped to zero.
func NewConfig(batchSize int, interBatchDelay time.Duration) Config {
	if batchSize < 1 {
		batchSize = 1
	}
	if interBatchDelay < 0 {
		interBatchDelay = 0
	}
	return Config{
		batchSize:       batchSize,
		interBatchDelay: interBatchDelay,
	}
}

// BatchSize returns the number of items per group.
func (c Config) BatchSize() int { return c.batchSize }

// InterBatchDelay returns the pause between groups.
func (c Config) InterBatchDelay() time.Duration { return c.interBatchDelay }

// Sleeper pauses between batches. It returns early with the context error
// if the context is cancelled during the pause.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configures a Process call.
type Option func(*options)

type options struct {
	sleep    Sleeper
	progress func(completed, total int)
}

// WithSleeper replaces the default sleeper. Tests use this to observe
// pacing without waiting on the wall clock.
func WithSleeper(s Sleeper) Option {
	return func(o *options) { o.sleep = s }
}

// WithProgress registers a callback invoked after each completed group with
// the number of items finished so far and the total item count.
func WithProgress(fn func(completed, total int)) Option {
	return func(o *options) { o.progress = fn }
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Process runs fn over items in groups of cfg.BatchSize(). Within a group
// all transforms run concurrently and Process waits for the whole group
// before moving on; between groups (but not after the final one) it pauses
// for cfg.InterBatchDelay(). Results are collected positionally, so
// results[i] always corresponds to items[i] regardless of completion order.
//
// The first transform error aborts processing and is returned. Process
// itself never retries; failure policy belongs to the caller's transform.
func Process[T, R any](ctx context.Context, items []T, cfg Config, fn func(context.Context, T) (R, error), opts ...Option) ([]R, error) {
	o := options{sleep: defaultSleep}
	for _, opt := range opts {
		opt(&o)
	}

	results := make([]R, len(items))
	total := len(items)

	for start := 0; start < total; start += cfg.BatchSize() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + cfg.BatchSize()
		if end > total {
			end = total
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				r, err := fn(gctx, items[i])
				if err != nil {
					return err
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		if o.progress != nil {
			o.progress(end, total)
		}

		if end < total {
			if err := o.sleep(ctx, cfg.InterBatchDelay()); err != nil {
				return nil, err
			}
		}
	}

	return results, nil
}
