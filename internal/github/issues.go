package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/ghexport/ghexport/internal/logger"
)

// MilestoneNone selects issues with no milestone when passed to
// IssuesForMilestone. The API also accepts "*" (any milestone) and a
// milestone number.
const MilestoneNone = "none"

// IssuesForMilestone returns every issue and pull request attached to
// the given milestone (a milestone number string, or MilestoneNone),
// matching the state filter. Pull requests are included: the issues
// endpoint serves both, distinguished by the pull-request marker.
func (c *Client) IssuesForMilestone(ctx context.Context, milestone, state string) ([]*gh.Issue, error) {
	opts := &gh.IssueListByRepoOptions{
		Milestone:   milestone,
		State:       state,
		ListOptions: gh.ListOptions{PerPage: c.perPage},
	}

	issues, err := collectPages(ctx, c.limiter, func(ctx context.Context, page int) ([]*gh.Issue, *gh.Response, error) {
		opts.ListOptions.Page = page
		items, resp, err := withRetry(ctx, func() ([]*gh.Issue, *gh.Response, error) {
			return c.gh.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		})
		if err != nil {
			return nil, nil, c.wrapError(err, "list issues")
		}
		c.updateRateLimitFromResponse(resp)
		return items, resp, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("fetched %d issues for milestone %s", len(issues), milestone)
	return issues, nil
}

// PartitionIssues splits a mixed issue list into plain issues and pull
// requests. Every input item lands in exactly one of the two outputs.
func PartitionIssues(items []*gh.Issue) (issues, pulls []*gh.Issue) {
	for _, item := range items {
		if item.IsPullRequest() {
			pulls = append(pulls, item)
		} else {
			issues = append(issues, item)
		}
	}
	return issues, pulls
}
