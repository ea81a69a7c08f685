package resilience

import (
	"context"
	"errors"
	"time"
)

// ErrNoAttempts reports a retry invocation configured with zero attempts.
var ErrNoAttempts = errors.New("resilience: max attempts must be > 0")

// Config configures retry behavior.
type Config struct {
	// MaxAttempts is the total number of attempts (including the first).
	MaxAttempts int
	// Delay is the fixed sleep between attempts.
	Delay time.Duration
	// RetryIf determines whether a failed attempt may be retried. A nil
	// predicate retries every error.
	RetryIf func(error) bool
	// OnRetry is called after a retryable failure, before the sleep.
	OnRetry func(attempt int, err error)
}

// Retry executes fn up to cfg.MaxAttempts times, sleeping cfg.Delay between
// attempts. fn receives the 1-based attempt number. The first error for
// which RetryIf returns false is returned immediately; otherwise the error
// from the final attempt is returned on exhaustion. No sleep occurs after
// the final attempt. The sleep honors context cancellation.
func Retry[T any](ctx context.Context, cfg Config, fn func(attempt int) (T, error)) (T, error) {
	var zero T
	var lastErr error

	if cfg.MaxAttempts <= 0 {
		return zero, ErrNoAttempts
	}

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return zero, lastErr
			}
			return zero, err
		}

		result, err := fn(attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if cfg.RetryIf != nil && !cfg.RetryIf(err) {
			return zero, err
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err)
		}

		timer := time.NewTimer(cfg.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}
	}

	return zero, lastErr
}
