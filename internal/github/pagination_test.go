package github

import (
	"context"
	"errors"
	"testing"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedInts returns a pageFunc serving items in chunks of perPage,
// mimicking the API's next-page numbering (pages are 1-based, page 0
// serves the first page).
func pagedInts(items []int, perPage int) pageFunc[int] {
	return func(_ context.Context, page int) ([]int, *gh.Response, error) {
		if page == 0 {
			page = 1
		}
		start := (page - 1) * perPage
		if start >= len(items) {
			return nil, &gh.Response{NextPage: 0}, nil
		}
		end := start + perPage
		next := page + 1
		if end >= len(items) {
			end = len(items)
			next = 0
		}
		return items[start:end], &gh.Response{NextPage: next}, nil
	}
}

func TestCollectPages(t *testing.T) {
	const perPage = 100
	limiter := NewThrottledRateLimiter(1e6)

	sequence := func(n int) []int {
		s := make([]int, n)
		for i := range s {
			s[i] = i
		}
		return s
	}

	cases := []struct {
		name string
		n    int
	}{
		{"empty result set", 0},
		{"exactly one page", perPage},
		{"one page plus one", perPage + 1},
		{"just under two pages", 2*perPage - 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := sequence(tc.n)

			got, err := collectPages(context.Background(), limiter, pagedInts(items, perPage))

			require.NoError(t, err)
			assert.Len(t, got, tc.n)
			assert.Equal(t, items, append([]int{}, got...))
		})
	}

	t.Run("propagates fetch errors", func(t *testing.T) {
		fetchErr := errors.New("boom")
		fetch := func(_ context.Context, _ int) ([]int, *gh.Response, error) {
			return nil, nil, fetchErr
		}

		_, err := collectPages(context.Background(), limiter, fetch)

		assert.ErrorIs(t, err, fetchErr)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := collectPages(ctx, limiter, pagedInts(sequence(perPage), perPage))

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("nil response ends the sequence", func(t *testing.T) {
		fetch := func(_ context.Context, _ int) ([]int, *gh.Response, error) {
			return []int{1, 2}, nil, nil
		}

		got, err := collectPages(context.Background(), limiter, fetch)

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got)
	})
}
