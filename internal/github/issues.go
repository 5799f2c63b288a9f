package github

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Issues fetches every Issue or Pull Request of a repository, depending on
// the mode. Results arrive in the server's creation order, oldest first,
// concatenated across however many pages the collection spans.
//
// If end is non-nil, pagination stops after the first page whose last item
// was created past that boundary; items already fetched are kept, and the
// caller is expected to filter.
func Issues(ctx context.Context, c *Client, mode Mode, owner, repo string, end *time.Time) ([]Issue, error) {
	fetch := func(ctx context.Context, cursor string) (Page[Issue], error) {
		body, err := issueQuery(mode, owner, repo, cursor)
		if err != nil {
			return Page[Issue]{}, err
		}

		raw, err := c.Post(ctx, body)
		if err != nil {
			return Page[Issue]{}, fmt.Errorf("fetching %s for %s/%s: %w", mode.graphCall(), owner, repo, err)
		}

		data, err := decode[issueRepository](raw)
		if err != nil {
			return Page[Issue]{}, err
		}

		page, err := data.page()
		if err != nil {
			return Page[Issue]{}, err
		}

		c.log.Debug("issue page fetched",
			zap.String("repo", owner+"/"+repo),
			zap.String("kind", mode.graphCall()),
			zap.Int("items", len(page.Edges)))

		return Page[Issue]{
			Items:     page.Nodes(),
			EndCursor: cursorOf(page.PageInfo),
			HasNext:   page.PageInfo.HasNextPage,
		}, nil
	}

	// No need to page past the point the user is looking for.
	var stop StopFunc[Issue]
	if end != nil {
		stop = func(last Issue) bool {
			return last.CreatedAt.After(*end)
		}
	}

	return Cursor(ctx, fetch, stop, 0)
}

func cursorOf(info PageInfo) string {
	if info.EndCursor == nil {
		return ""
	}
	return *info.EndCursor
}
