package retry

import (
	"context"
	"errors"
	"time"

	ai "github.com/mstrand/itinera"
)

// Do executes the given function with retry logic.
// Only transient errors (per ai.IsTransient) are retried; backoff waits
// respect context cancellation and honor a server-provided Retry-After
// delay when the error carries one. Returns the result on success, or the
// last error if all attempts fail.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !ai.IsTransient(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			delay := cfg.Delay(attempt)
			if suggested := retryAfter(err); suggested > delay {
				delay = suggested
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// retryAfter extracts the server-suggested retry delay, if any.
func retryAfter(err error) time.Duration {
	var categorized ai.CategorizedError
	if errors.As(err, &categorized) {
		return categorized.RetryAfter()
	}
	return 0
}
