package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/sitemirror"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*sitemirror.Response, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// MaxRetryDelay caps a single backoff delay.
const MaxRetryDelay = time.Minute

// RetryDelays returns n exponential backoff delays starting at 1s: 1s, 2s, 4s, ...
// Each delay is capped at MaxRetryDelay.
// Returns nil when n is zero or negative, which disables retries.
func RetryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d = min(2*d, MaxRetryDelay)
	}
	return delays
}

// FetchWithRetryDelays attempts to fetch a URL, retrying transport failures
// after each of the given delays. Status errors are never retried since the
// server answered. With no delays it makes exactly one attempt.
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (*sitemirror.Response, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := fetch(ctx, url)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if sitemirror.ErrorCode(err) != sitemirror.ETRANSPORT {
			break
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
