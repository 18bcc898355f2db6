package github

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// testLimiter builds a limiter with an unthrottled bucket and a short
// pause so tests observe the blocking behaviour without real waits.
func testLimiter(remaining int, pause time.Duration) *RateLimiter {
	return &RateLimiter{
		remaining:    remaining,
		limit:        GitHubRateLimit,
		bucket:       rate.NewLimiter(rate.Inf, 1),
		minRemaining: MinRemaining,
		pause:        pause,
	}
}

func TestRateLimiter_Wait(t *testing.T) {
	t.Run("blocks when remaining budget is low", func(t *testing.T) {
		pause := 30 * time.Millisecond
		l := testLimiter(50, pause)

		start := time.Now()
		err := l.Wait(context.Background())

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), pause)
	})

	t.Run("does not block with plenty of budget", func(t *testing.T) {
		l := testLimiter(1000, time.Minute)

		start := time.Now()
		err := l.Wait(context.Background())

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("pause honours context cancellation", func(t *testing.T) {
		l := testLimiter(50, time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := l.Wait(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	t.Run("parses rate limit headers", func(t *testing.T) {
		l := NewRateLimiter()

		resp := &http.Response{Header: http.Header{}}
		resp.Header.Set(HeaderRateRemaining, "42")
		resp.Header.Set(HeaderRateLimit, "5000")
		resp.Header.Set(HeaderRateReset, "1700000000")

		l.UpdateFromResponse(resp)

		assert.Equal(t, 42, l.Remaining())
		assert.Equal(t, 5000, l.Limit())
		assert.Equal(t, time.Unix(1700000000, 0), l.ResetTime())
	})

	t.Run("ignores nil response", func(t *testing.T) {
		l := NewRateLimiter()
		l.UpdateFromResponse(nil)

		assert.Equal(t, GitHubRateLimit, l.Remaining())
	})

	t.Run("ignores malformed header values", func(t *testing.T) {
		l := NewRateLimiter()

		resp := &http.Response{Header: http.Header{}}
		resp.Header.Set(HeaderRateRemaining, "not-a-number")

		l.UpdateFromResponse(resp)

		assert.Equal(t, GitHubRateLimit, l.Remaining())
	})
}

func TestNewThrottledRateLimiter(t *testing.T) {
	t.Run("non-positive rate falls back to default", func(t *testing.T) {
		l := NewThrottledRateLimiter(0)

		require.NotNil(t, l)
		assert.Equal(t, rate.Limit(DefaultThrottle), l.bucket.Limit())
	})

	t.Run("custom rate is applied", func(t *testing.T) {
		l := NewThrottledRateLimiter(10)

		assert.Equal(t, rate.Limit(10), l.bucket.Limit())
	})
}
