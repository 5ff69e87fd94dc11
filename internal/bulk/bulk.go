// Package bulk runs batches of operations with bounded concurrency and
// per-item retry, splitting the outcome into successful and failed items.
package bulk

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/colinmollenhour/clickup-mcp-server/internal/logger"
)

const (
	// DefaultConcurrency bounds the number of in-flight operations.
	DefaultConcurrency = 4

	// DefaultRetryDelay is the base delay for exponential backoff.
	DefaultRetryDelay = 100 * time.Millisecond
)

// Options controls batch execution. The zero value is not meaningful on its
// own; use DefaultOptions or Normalize before running.
type Options struct {
	// Concurrency is the maximum number of operations in flight at once.
	Concurrency int

	// RetryCount is the number of retries per item after the first attempt.
	RetryCount int

	// RetryDelay is the base delay for exponential backoff between retries.
	RetryDelay time.Duration

	// ContinueOnError keeps processing remaining items after a failure.
	// When false, the first failure cancels the rest of the batch.
	ContinueOnError bool
}

// DefaultOptions returns the documented default execution options.
func DefaultOptions() Options {
	return Options{
		Concurrency:     DefaultConcurrency,
		RetryCount:      0,
		RetryDelay:      DefaultRetryDelay,
		ContinueOnError: true,
	}
}

// Normalize fills invalid fields with defaults.
func (o Options) Normalize() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.RetryCount < 0 {
		o.RetryCount = 0
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	return o
}

// FailedItem pairs an input item with the error that failed it.
type FailedItem[T any] struct {
	Item T
	Err  error
}

// BatchResult is the outcome of a batch run. Successful holds results in
// input order; Failed holds the items that did not complete.
type BatchResult[T, R any] struct {
	Successful []R
	Failed     []FailedItem[T]
}

// Run executes fn for every item with at most opts.Concurrency operations in
// flight. Each item is retried opts.RetryCount times with exponential backoff
// before being recorded as failed. With ContinueOnError false, the first
// failure cancels outstanding items; cancelled items are recorded as failed
// with the context error. Run itself only returns an error when ctx was
// cancelled from outside.
func Run[T, R any](ctx context.Context, items []T, opts Options, fn func(context.Context, T) (R, error)) (*BatchResult[T, R], error) {
	opts = opts.Normalize()
	log := logger.FromContext(ctx)
	log.Debug("starting batch", "items", len(items), "concurrency", opts.Concurrency, "retries", opts.RetryCount)

	results := make([]*R, len(items))
	errs := make([]error, len(items))

	g, runCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i := range items {
		item := items[i]
		idx := i
		g.Go(func() error {
			// Skip items whose batch was already cancelled.
			if err := runCtx.Err(); err != nil {
				errs[idx] = err
				return nil
			}
			r, err := runWithRetry(runCtx, opts, item, fn)
			if err != nil {
				errs[idx] = err
				if !opts.ContinueOnError {
					// Returning the error cancels runCtx for the
					// remaining items.
					return err
				}
				return nil
			}
			results[idx] = &r
			return nil
		})
	}

	// Wait settles every goroutine. Its error is already recorded per
	// item, so only outside cancellation aborts the batch as a whole.
	_ = g.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	out := &BatchResult[T, R]{}
	for i := range items {
		switch {
		case results[i] != nil:
			out.Successful = append(out.Successful, *results[i])
		case errs[i] != nil:
			out.Failed = append(out.Failed, FailedItem[T]{Item: items[i], Err: errs[i]})
		default:
			// Never started or aborted mid-flight after cancellation.
			out.Failed = append(out.Failed, FailedItem[T]{Item: items[i], Err: context.Canceled})
		}
	}

	log.Debug("batch finished", "successful", len(out.Successful), "failed", len(out.Failed))
	return out, nil
}

// runWithRetry runs fn for one item, retrying with exponential backoff.
func runWithRetry[T, R any](ctx context.Context, opts Options, item T, fn func(context.Context, T) (R, error)) (R, error) {
	var result R
	var lastErr error

	backoff := retry.WithMaxRetries(uint64(opts.RetryCount), retry.NewExponential(opts.RetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, callErr := fn(ctx, item)
		if callErr != nil {
			lastErr = callErr
			return retry.RetryableError(callErr)
		}
		result = r
		lastErr = nil
		return nil
	})
	if err != nil {
		if lastErr != nil {
			return result, lastErr
		}
		return result, err
	}
	return result, nil
}
