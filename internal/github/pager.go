package github

import (
	"context"
	"net/http"
	"strings"
)

// Page is one fetched page of a cursor-paginated collection.
type Page[A any] struct {
	Items     []A
	EndCursor string
	HasNext   bool
}

// FetchFunc retrieves the page that begins at the given cursor. An empty
// cursor means the first page.
type FetchFunc[A any] func(ctx context.Context, cursor string) (Page[A], error)

// StopFunc is an early-stop predicate, evaluated against the last item of
// each fetched page. Returning true keeps that page's items but prevents any
// further page from being fetched.
type StopFunc[A any] func(last A) bool

// Cursor walks a cursor-paginated collection to completion, concatenating
// items in fetch order. It stops when the server reports no further page,
// when the early-stop predicate fires, or when maxPages pages have been
// fetched (0 means unbounded). A fetch error aborts the whole walk.
//
// This is an explicit loop rather than a recursion per page, so arbitrarily
// deep collections cannot grow the call stack.
func Cursor[A any](ctx context.Context, fetch FetchFunc[A], stop StopFunc[A], maxPages int) ([]A, error) {
	var items []A
	var cursor string

	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}

		items = append(items, result.Items...)

		if !result.HasNext || result.EndCursor == "" {
			break
		}
		if maxPages > 0 && page >= maxPages {
			break
		}
		if stop != nil && len(result.Items) > 0 && stop(result.Items[len(result.Items)-1]) {
			break
		}

		cursor = result.EndCursor
	}

	return items, nil
}

// Links walks a Link-header-paginated REST collection, invoking the callback
// with each page's raw body. The rel="next" URL is followed verbatim until
// the header no longer offers one.
func Links(ctx context.Context, c *Client, url string, each func(body []byte) error) error {
	for url != "" {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		body, headers, err := c.Get(ctx, url)
		if err != nil {
			return err
		}
		if err := each(body); err != nil {
			return err
		}

		url = nextLink(headers)
	}

	return nil
}

// nextLink extracts the rel="next" URL from a Link response header.
//
// The header looks like:
//
//	<https://api.github.com/repos/o/r/contributors?page=2>; rel="next", <...>; rel="last"
func nextLink(headers http.Header) string {
	link := headers.Get("Link")
	if link == "" {
		return ""
	}

	for _, part := range strings.Split(link, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		if urlPart, _, ok := strings.Cut(part, ">"); ok {
			if url, ok := strings.CutPrefix(strings.TrimSpace(urlPart), "<"); ok {
				return url
			}
		}
	}

	return ""
}
