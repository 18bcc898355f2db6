package github

import (
	"context"
	"errors"
	"net"
	"time"

	gh "github.com/google/go-github/v80/github"
)

const (
	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the fixed delay between retries.
	RetryDelay = time.Second
)

// isTransient reports whether an error is worth retrying: network-level
// failures and server-side (5xx) responses. Client errors (auth,
// not-found, validation) never retry.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode >= 500
	}

	return false
}

// withRetry runs fn, retrying transient failures up to MaxRetries times
// with a fixed delay between attempts. The delay honours context
// cancellation.
func withRetry[T any](ctx context.Context, fn func() (T, *gh.Response, error)) (T, *gh.Response, error) {
	var (
		result T
		resp   *gh.Response
		err    error
	)

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		result, resp, err = fn()
		if err == nil || !isTransient(err) {
			return result, resp, err
		}

		if attempt < MaxRetries {
			select {
			case <-ctx.Done():
				return result, resp, ctx.Err()
			case <-time.After(RetryDelay):
			}
		}
	}

	return result, resp, err
}
