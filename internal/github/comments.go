package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"
)

// IssueComments returns every comment on the given issue or pull
// request, in API order.
func (c *Client) IssueComments(ctx context.Context, number int) ([]*gh.IssueComment, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: c.perPage},
	}

	return collectPages(ctx, c.limiter, func(ctx context.Context, page int) ([]*gh.IssueComment, *gh.Response, error) {
		opts.Page = page
		comments, resp, err := withRetry(ctx, func() ([]*gh.IssueComment, *gh.Response, error) {
			return c.gh.Issues.ListComments(ctx, c.owner, c.repo, number, opts)
		})
		if err != nil {
			return nil, nil, c.wrapError(err, "list comments")
		}
		c.updateRateLimitFromResponse(resp)
		return comments, resp, nil
	})
}
