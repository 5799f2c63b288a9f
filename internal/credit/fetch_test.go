package credit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fosskers/credit/internal/github"
	"github.com/fosskers/credit/internal/state"
)

// fakeForge answers both the issues and pullRequests halves of a repository
// lookup with a single canned page each, failing outright for any repository
// whose owner is "broken".
func fakeForge(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Variables["owner"] == "broken" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}

		field := "issues"
		extra := ""
		if strings.Contains(req.Query, "pullRequests") {
			field = "pullRequests"
			extra = `"mergedAt": "2020-01-05T00:00:00Z", "closedAt": "2020-01-05T00:00:00Z",`
		}

		fmt.Fprintf(w, `{"data": {"repository": {%q: {
			"pageInfo": {"hasNextPage": false, "endCursor": null},
			"edges": [{"node": {
				"author": {"login": "someone"},
				"createdAt": "2020-01-01T00:00:00Z",
				%s
				"comments": {"edges": []}
			}}]
		}}}}`, field, extra)
	}))
}

func forgeClient(server *httptest.Server) *github.Client {
	return github.NewClient("x",
		github.WithBaseURLs(server.URL, server.URL),
		github.WithRetryDelay(0))
}

func TestRepoThreads(t *testing.T) {
	t.Parallel()

	server := fakeForge(t)
	defer server.Close()

	for _, serial := range []bool{false, true} {
		postings, err := RepoThreads(context.Background(), forgeClient(server),
			FetchOptions{Serial: serial}, Repo{Owner: "o", Name: "r"})
		require.NoError(t, err)
		assert.Len(t, postings.Issues, 1)
		require.Len(t, postings.PRs, 1)
		assert.True(t, postings.PRs[0].IsMerged())
	}
}

func TestRepoThreadsWindow(t *testing.T) {
	t.Parallel()

	server := fakeForge(t)
	defer server.Close()

	// Everything in the fake was created on 2020-01-01; a later window
	// filters it all out.
	start := ts(10)
	postings, err := RepoThreads(context.Background(), forgeClient(server),
		FetchOptions{Start: &start}, Repo{Owner: "o", Name: "r"})
	require.NoError(t, err)
	assert.Empty(t, postings.Issues)
	assert.Empty(t, postings.PRs)
}

func TestAllRepoThreadsPartialFailure(t *testing.T) {
	t.Parallel()

	server := fakeForge(t)
	defer server.Close()

	tracker := state.NewTracker(true)
	repos := []Repo{
		{Owner: "o", Name: "one"},
		{Owner: "broken", Name: "two"},
		{Owner: "o", Name: "three"},
	}

	postings, failures := AllRepoThreads(context.Background(), forgeClient(server),
		tracker, FetchOptions{}, repos, 2)

	// Two repositories succeed, one fails; the failure names its repo.
	assert.Len(t, postings.Issues, 2)
	assert.Len(t, postings.PRs, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "broken/two", failures[0].Repo.String())
	assert.Contains(t, failures[0].Error(), "broken/two")
}
