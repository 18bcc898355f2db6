// Package export builds the nested milestone → issues/pulls → comments
// document for a repository, memoizing fully-resolved entities in a
// checkpoint store.
package export

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/ghexport/ghexport/internal/checkpoint"
	"github.com/ghexport/ghexport/internal/github"
	"github.com/ghexport/ghexport/internal/logger"
)

// progressWidth is the character width of the terminal progress bar.
const progressWidth = 50

// Exporter orchestrates the export traversal. The traversal is
// sequential: one milestone at a time, one issue at a time.
type Exporter struct {
	client   *github.Client
	store    checkpoint.Store
	state    string
	progress io.Writer
}

// New creates an Exporter. The progress writer receives the repainted
// percentage bar; pass io.Discard to silence it.
func New(client *github.Client, store checkpoint.Store, state string, progress io.Writer) *Exporter {
	return &Exporter{
		client:   client,
		store:    store,
		state:    state,
		progress: progress,
	}
}

// Run walks every milestone of the repository and returns the complete
// export document. The synthetic "none" milestone, aggregating items
// without a milestone, is always appended last.
func (e *Exporter) Run(ctx context.Context) (Document, error) {
	milestones, err := e.client.Milestones(ctx, e.state)
	if err != nil {
		return nil, fmt.Errorf("fetching milestones: %w", err)
	}

	total := len(milestones) + 1 // plus the synthetic "none" milestone
	docs := make([]any, 0, total)

	for i, m := range milestones {
		doc, err := e.milestoneDoc(ctx, m)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
		e.paintProgress((i + 1) * 100 / total)
	}

	noneDoc, err := e.noneMilestoneDoc(ctx)
	if err != nil {
		return nil, err
	}
	docs = append(docs, noneDoc)
	e.paintProgress(100)
	e.finishProgress()

	return Document{"milestones": docs}, nil
}

// milestoneDoc resolves one milestone: cache hit short-circuits,
// otherwise issues and pulls are fetched, partitioned and nested.
func (e *Exporter) milestoneDoc(ctx context.Context, m *gh.Milestone) (map[string]any, error) {
	id := strconv.FormatInt(m.GetID(), 10)

	if data, ok, err := e.store.Get(checkpoint.KindMilestone, id); err != nil {
		return nil, err
	} else if ok {
		logger.Debug("milestone %s: checkpoint hit", id)
		return decodeDoc(data)
	}

	doc, err := rawFields(m)
	if err != nil {
		return nil, err
	}

	if err := e.attachItems(ctx, doc, strconv.Itoa(m.GetNumber())); err != nil {
		return nil, fmt.Errorf("milestone %q: %w", m.GetTitle(), err)
	}

	return doc, e.storeDoc(checkpoint.KindMilestone, id, doc)
}

// noneMilestoneDoc builds the synthetic milestone for items with no
// milestone. Its document carries a null id plus the issue/pull arrays.
func (e *Exporter) noneMilestoneDoc(ctx context.Context) (map[string]any, error) {
	if data, ok, err := e.store.Get(checkpoint.KindMilestone, github.MilestoneNone); err != nil {
		return nil, err
	} else if ok {
		logger.Debug("milestone none: checkpoint hit")
		return decodeDoc(data)
	}

	doc := map[string]any{"id": nil}
	if err := e.attachItems(ctx, doc, github.MilestoneNone); err != nil {
		return nil, fmt.Errorf("unmilestoned items: %w", err)
	}

	return doc, e.storeDoc(checkpoint.KindMilestone, github.MilestoneNone, doc)
}

// attachItems fetches the milestone's items, partitions them into
// issues and pulls, and nests both resolved lists into doc.
func (e *Exporter) attachItems(ctx context.Context, doc map[string]any, milestone string) error {
	items, err := e.client.IssuesForMilestone(ctx, milestone, e.state)
	if err != nil {
		return fmt.Errorf("fetching issues: %w", err)
	}

	issues, pulls := github.PartitionIssues(items)

	issueDocs, err := e.issueDocs(ctx, issues)
	if err != nil {
		return err
	}
	pullDocs, err := e.issueDocs(ctx, pulls)
	if err != nil {
		return err
	}

	doc["issues"] = issueDocs
	doc["pulls"] = pullDocs
	return nil
}

// issueDocs resolves a list of issues (or pulls) with their comments,
// cache-checked per item.
func (e *Exporter) issueDocs(ctx context.Context, issues []*gh.Issue) ([]any, error) {
	docs := make([]any, 0, len(issues))

	for _, issue := range issues {
		id := strconv.FormatInt(issue.GetID(), 10)

		if data, ok, err := e.store.Get(checkpoint.KindIssue, id); err != nil {
			return nil, err
		} else if ok {
			logger.Debug("issue %s: checkpoint hit", id)
			doc, err := decodeDoc(data)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
			continue
		}

		doc, err := rawFields(issue)
		if err != nil {
			return nil, err
		}

		comments, err := e.client.IssueComments(ctx, issue.GetNumber())
		if err != nil {
			return nil, fmt.Errorf("issue #%d: fetching comments: %w", issue.GetNumber(), err)
		}

		commentDocs := make([]any, 0, len(comments))
		for _, c := range comments {
			cd, err := rawFields(c)
			if err != nil {
				return nil, err
			}
			commentDocs = append(commentDocs, cd)
		}
		doc["comments"] = commentDocs

		if err := e.storeDoc(checkpoint.KindIssue, id, doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// storeDoc writes a resolved entity to the checkpoint store.
func (e *Exporter) storeDoc(kind checkpoint.Kind, id string, doc map[string]any) error {
	data, err := encodeDoc(doc)
	if err != nil {
		return err
	}
	return e.store.Put(kind, id, data)
}

// paintProgress repaints the percentage bar on the same terminal line.
func (e *Exporter) paintProgress(pct int) {
	filled := pct * progressWidth / 100
	fmt.Fprintf(e.progress, "\r[%-*s] %d%%", progressWidth, strings.Repeat("#", filled), pct)
}

// finishProgress terminates the progress line.
func (e *Exporter) finishProgress() {
	fmt.Fprintln(e.progress)
}
