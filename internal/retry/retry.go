// Package retry provides a fixed-delay retry helper for upstream API
// calls. Backoff is deliberately flat rather than exponential: upstream
// rate limits publish a fixed cool-off, so waiting longer gains nothing.
package retry

import (
	"context"
	"time"
)

// Policy controls how an operation is retried.
type Policy struct {
	// MaxAttempts is the total number of tries including the first.
	// Zero or negative means retry without bound.
	MaxAttempts int

	// Delay is the fixed pause between attempts.
	Delay time.Duration

	// Retryable reports whether an error is worth retrying.
	// A nil Retryable retries every error.
	Retryable func(error) bool
}

// Do runs op until it succeeds, returns a non-retryable error, exhausts
// the attempt budget, or the context is cancelled. The last error seen
// is returned unmodified so callers can inspect it with errors.As.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}

		attempt++
		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return err
		}

		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}
}

// sleep pauses for d, returning early if the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
