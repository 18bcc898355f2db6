package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"
)

// pageFunc fetches a single page of results. A page value of 0 requests
// the first page (the API picks its default).
type pageFunc[T any] func(ctx context.Context, page int) ([]T, *gh.Response, error)

// collectPages drains a paginated result set into an ordered slice.
// Termination is driven by a single signal: the response's NextPage is
// zero once the last page has been served. The rate limiter is consulted
// before each page fetch and updated from each response.
func collectPages[T any](ctx context.Context, limiter *RateLimiter, fetch pageFunc[T]) ([]T, error) {
	var all []T

	page := 0
	for {
		select {
		case <-ctx.Done():
			return all, ctx.Err()
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		items, resp, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		page = resp.NextPage
	}
}
