package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/ghexport/ghexport/internal/logger"
)

// Milestone states accepted by the API.
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)

// Milestones returns every milestone of the repository matching the
// state filter, in API order.
func (c *Client) Milestones(ctx context.Context, state string) ([]*gh.Milestone, error) {
	opts := &gh.MilestoneListOptions{
		State:       state,
		ListOptions: gh.ListOptions{PerPage: c.perPage},
	}

	milestones, err := collectPages(ctx, c.limiter, func(ctx context.Context, page int) ([]*gh.Milestone, *gh.Response, error) {
		opts.Page = page
		ms, resp, err := withRetry(ctx, func() ([]*gh.Milestone, *gh.Response, error) {
			return c.gh.Issues.ListMilestones(ctx, c.owner, c.repo, opts)
		})
		if err != nil {
			return nil, nil, c.wrapError(err, "list milestones")
		}
		c.updateRateLimitFromResponse(resp)
		return ms, resp, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("fetched %d milestones (state=%s)", len(milestones), state)
	return milestones, nil
}
