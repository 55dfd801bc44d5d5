package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error worth another attempt. The fetcher wraps
// transient download failures in it (timeouts, connection resets, 5xx
// responses); any error not wrapped this way aborts the retry loop
// immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay after each failure.
// Only errors wrapped in [RetryableError] are retried. A cancelled context
// wins over the next attempt; the last error is returned when every attempt
// fails.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff is [Retry] with the defaults used for dataset downloads:
// three attempts starting at one second. Enough to ride out a flaky mirror
// without stalling the CLI for long.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
