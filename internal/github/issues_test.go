package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// issuePage renders one canned GraphQL response page under the given
// collection field.
func issuePage(field string, cursor string, hasNext bool, createdAt ...string) string {
	edges := make([]string, 0, len(createdAt))
	for _, at := range createdAt {
		edges = append(edges, fmt.Sprintf(`{"node": {
			"author": {"login": "someone"},
			"createdAt": %q,
			"comments": {"edges": []}
		}}`, at))
	}

	var joined string
	for i, e := range edges {
		if i > 0 {
			joined += ","
		}
		joined += e
	}

	return fmt.Sprintf(`{"data": {"repository": {%q: {
		"pageInfo": {"hasNextPage": %t, "endCursor": %q},
		"edges": [%s]
	}}}}`, field, hasNext, cursor, joined)
}

func TestIssuesPaginates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if _, ok := req.Variables["cursor"]; !ok {
			fmt.Fprint(w, issuePage("issues", "c1", true, "2020-01-01T00:00:00Z", "2020-02-01T00:00:00Z"))
			return
		}
		fmt.Fprint(w, issuePage("issues", "", false, "2020-03-01T00:00:00Z"))
	}))
	defer server.Close()

	client := NewClient("x", WithBaseURLs(server.URL, server.URL), WithRetryDelay(0))

	issues, err := Issues(context.Background(), client, ModeIssues, "o", "r", nil)
	require.NoError(t, err)
	require.Len(t, issues, 3)
	assert.Equal(t, 2020, issues[0].CreatedAt.Year())
	assert.Equal(t, time.March, issues[2].CreatedAt.Month())
}

func TestIssuesEarlyStop(t *testing.T) {
	t.Parallel()

	pages := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		// Every page claims more data; only the early stop can end this.
		fmt.Fprint(w, issuePage("issues", fmt.Sprintf("c%d", pages), true,
			fmt.Sprintf("202%d-01-01T00:00:00Z", pages)))
	}))
	defer server.Close()

	client := NewClient("x", WithBaseURLs(server.URL, server.URL), WithRetryDelay(0))

	end := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	issues, err := Issues(context.Background(), client, ModeIssues, "o", "r", &end)
	require.NoError(t, err)

	// Page 2 ends with a 2022 item, past the boundary: kept, but page 3 is
	// never fetched.
	assert.Equal(t, 2, pages)
	assert.Len(t, issues, 2)
}

func TestIssuesPullRequestShape(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"repository": {"pullRequests": {
			"pageInfo": {"hasNextPage": false, "endCursor": null},
			"edges": [{"node": {
				"author": {"login": "someone"},
				"createdAt": "2020-01-01T00:00:00Z",
				"closedAt": "2020-01-03T00:00:00Z",
				"mergedAt": "2020-01-03T00:00:00Z",
				"commits": {"totalCount": 4},
				"comments": {"edges": []}
			}}]
		}}}}`)
	}))
	defer server.Close()

	client := NewClient("x", WithBaseURLs(server.URL, server.URL), WithRetryDelay(0))

	prs, err := Issues(context.Background(), client, ModePRsWithCommits, "o", "r", nil)
	require.NoError(t, err)
	require.Len(t, prs, 1)
	require.NotNil(t, prs[0].MergedAt)
	require.NotNil(t, prs[0].Commits)
	assert.Equal(t, 4, prs[0].Commits.TotalCount)
}

func TestContributorsPaginates(t *testing.T) {
	t.Parallel()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/repos/o/r/contributors?per_page=100&page=2>; rel="next"`, server.URL))
			fmt.Fprint(w, `[{"login": "alice", "contributions": 9}]`)
			return
		}
		fmt.Fprint(w, `[{"login": "bob", "contributions": 2}]`)
	}))
	defer server.Close()

	client := NewClient("x", WithBaseURLs(server.URL, server.URL), WithRetryDelay(0))

	contributors, err := Contributors(context.Background(), client, "o", "r")
	require.NoError(t, err)
	require.Len(t, contributors, 2)
	assert.Equal(t, "alice", contributors[0].Login)
	assert.Equal(t, 2, contributors[1].Contributions)
}
