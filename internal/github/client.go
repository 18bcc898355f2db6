package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/ghexport/ghexport/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	// Token is the API token (or username when Password is set).
	Token string

	// Password enables basic authentication alongside Token.
	Password string

	// Owner and Repo identify the repository to export.
	Owner string
	Repo  string

	// PerPage is the page size for list calls. Defaults to 100.
	PerPage int

	// Throttle is the proactive request rate in requests per second.
	// Zero uses the default.
	Throttle float64

	// BaseURL overrides the API endpoint. Used in tests.
	BaseURL string
}

// Client wraps the go-github client with rate limiting and error
// translation for a single repository.
type Client struct {
	gh      *gh.Client
	owner   string
	repo    string
	perPage int
	limiter *RateLimiter
}

// NewClient creates a GitHub API client. A bare token authenticates via
// an OAuth2 static token source; a token plus password uses basic auth.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 100
	}

	var ghc *gh.Client
	if opts.Password != "" {
		tp := &gh.BasicAuthTransport{
			Username: opts.Token,
			Password: opts.Password,
		}
		ghc = gh.NewClient(tp.Client())
	} else {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		tc := oauth2.NewClient(ctx, ts)
		tc.Timeout = DefaultTimeout
		ghc = gh.NewClient(tc)
	}

	if opts.BaseURL != "" {
		base, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		ghc.BaseURL = base
	}

	return &Client{
		gh:      ghc,
		owner:   opts.Owner,
		repo:    opts.Repo,
		perPage: perPage,
		limiter: NewThrottledRateLimiter(opts.Throttle),
	}, nil
}

// Owner returns the configured repository owner.
func (c *Client) Owner() string { return c.owner }

// Repo returns the configured repository name.
func (c *Client) Repo() string { return c.repo }

// RateLimiter returns the rate limiter guarding this client.
func (c *Client) RateLimiter() *RateLimiter { return c.limiter }

// Repository fetches the configured repository. Used up front to surface
// bad credentials and unknown repositories before the traversal starts.
func (c *Client) Repository(ctx context.Context) (*gh.Repository, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := withRetry(ctx, func() (*gh.Repository, *gh.Response, error) {
		return c.gh.Repositories.Get(ctx, c.owner, c.repo)
	})
	if err != nil {
		return nil, c.wrapError(err, "get repository")
	}

	c.updateRateLimitFromResponse(resp)
	logger.Debug("resolved repository %s/%s", c.owner, c.repo)
	return repository, nil
}

// RateLimit returns the current core rate limit status.
func (c *Client) RateLimit(ctx context.Context) (remaining, limit int, err error) {
	limits, resp, err := withRetry(ctx, func() (*gh.RateLimits, *gh.Response, error) {
		return c.gh.RateLimit.Get(ctx)
	})
	if err != nil {
		return 0, 0, c.wrapError(err, "get rate limit")
	}

	c.updateRateLimitFromResponse(resp)
	core := limits.GetCore()
	return core.Remaining, core.Limit, nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub
// response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.limiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.limiter.ResetTime(),
			Remaining: c.limiter.Remaining(),
			Limit:     c.limiter.Limit(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
