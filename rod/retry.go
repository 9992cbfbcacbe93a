package rod

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays between navigation
// attempts: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// retry calls fn up to len(delays)+1 times, sleeping delays[i] after the
// (i+1)th failure. onRetry, if set, is called before each sleep with the
// number of the next attempt.
func retry(ctx context.Context, delays []time.Duration, fn func() error, onRetry func(attempt int, err error)) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return lastErr
}
