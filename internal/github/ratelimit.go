package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// GitHubRateLimit is the authenticated rate limit (5000/hour).
	GitHubRateLimit = 5000

	// DefaultThrottle is the proactive throttle rate (~1.2 req/sec = 4320/hr).
	DefaultThrottle = 1.2

	// MinRemaining is the minimum remaining requests before pausing.
	MinRemaining = 100

	// PauseDuration is the fixed pause applied when the remaining budget
	// drops below MinRemaining. No backoff growth, no jitter.
	PauseDuration = 2 * time.Minute

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"
)

// RateLimiter guards every remote call. It tracks the remaining request
// budget from response headers and pauses for a fixed duration whenever
// the budget runs low, on top of a proactive token-bucket throttle.
type RateLimiter struct {
	mu           sync.Mutex
	remaining    int
	limit        int
	resetTime    time.Time
	bucket       *rate.Limiter
	minRemaining int
	pause        time.Duration
}

// NewRateLimiter creates a rate limiter with the default throttle rate.
func NewRateLimiter() *RateLimiter {
	return NewThrottledRateLimiter(DefaultThrottle)
}

// NewThrottledRateLimiter creates a rate limiter with a custom proactive
// throttle rate in requests per second. A rate <= 0 uses the default.
func NewThrottledRateLimiter(perSecond float64) *RateLimiter {
	if perSecond <= 0 {
		perSecond = DefaultThrottle
	}
	return &RateLimiter{
		remaining:    GitHubRateLimit, // Assume full quota initially
		limit:        GitHubRateLimit,
		bucket:       rate.NewLimiter(rate.Limit(perSecond), 1),
		minRemaining: MinRemaining,
		pause:        PauseDuration,
	}
}

// Wait blocks until it is safe to make a request. When the remaining
// budget is below the threshold it pauses for the fixed duration,
// honouring context cancellation.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	pause := r.pause
	r.mu.Unlock()

	if remaining < r.minRemaining {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
		}
	}

	return nil
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}

	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}

	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.resetTime = time.Unix(val, 0)
		}
	}
}

// Remaining returns the current remaining requests.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Limit returns the rate limit.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// ResetTime returns the rate limit reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}
