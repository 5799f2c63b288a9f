package github

import (
	"encoding/json"
	"fmt"
)

// Mode selects which collection an issue-shaped query targets, and whether
// merge timestamps and commit counts are requested.
type Mode int

const (
	// ModeIssues queries the issues collection.
	ModeIssues Mode = iota
	// ModePRs queries the pullRequests collection with merge timestamps.
	ModePRs
	// ModePRsWithCommits additionally requests per-PR commit counts.
	ModePRsWithCommits
)

// Page size constants. Issue/PR paging uses the API maximum; user search pages
// are deliberately small because each user node is expensive to resolve.
const (
	issuePageSize   = 100
	commentPageSize = 100
	userPageSize    = 10

	// maxUserPages bounds the unbounded user search. The search index holds
	// far more users than we will ever rank, so 100 pages of 10 is plenty.
	maxUserPages = 10 * (100 / userPageSize)
)

// graphCall is the GraphQL field name of the collection to page through.
func (m Mode) graphCall() string {
	if m == ModeIssues {
		return "issues"
	}
	return "pullRequests"
}

// mergedField is the mergedAt request line, empty for plain issues.
func (m Mode) mergedField() string {
	if m == ModeIssues {
		return ""
	}
	return "mergedAt"
}

// commitsField is the commit-count request block, only for ModePRsWithCommits.
func (m Mode) commitsField() string {
	if m == ModePRsWithCommits {
		return "commits { totalCount }"
	}
	return ""
}

// request is the POST body of a GraphQL call.
type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

func (r request) encode() ([]byte, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding GraphQL request: %w", err)
	}
	return body, nil
}

// issueQuery builds the request body for one page of issues or PRs. The
// collection field and its optional subfields vary by mode, so they are
// spliced into the query text; everything user-supplied travels as variables.
func issueQuery(mode Mode, owner, repo, cursor string) ([]byte, error) {
	query := fmt.Sprintf(`
	query($owner: String!, $name: String!, $cursor: String) {
		repository(owner: $owner, name: $name) {
			%s(first: %d, after: $cursor) {
				pageInfo {
					hasNextPage
					endCursor
				}
				edges {
					node {
						author {
							login
						}
						createdAt
						closedAt
						%s
						%s
						comments(first: %d) {
							edges {
								node {
									author {
										login
									}
									authorAssociation
									createdAt
								}
							}
						}
					}
				}
			}
		}
	}`, mode.graphCall(), issuePageSize, mode.mergedField(), mode.commitsField(), commentPageSize)

	vars := map[string]any{
		"owner": owner,
		"name":  repo,
	}
	if cursor != "" {
		vars["cursor"] = cursor
	}

	return request{Query: query, Variables: vars}.encode()
}

// usersQuery builds the request body for one page of the location-based user
// search, ordered by follower count so that the early-stop on zero-follower
// users is meaningful.
func usersQuery(location, cursor string) ([]byte, error) {
	query := fmt.Sprintf(`
	query($search: String!, $cursor: String) {
		search(type: USER, query: $search, first: %d, after: $cursor) {
			userCount
			pageInfo {
				hasNextPage
				endCursor
			}
			edges {
				node {
					... on User {
						login
						name
						followers {
							totalCount
						}
						contributionsCollection {
							contributionCalendar {
								totalContributions
							}
							restrictedContributionsCount
						}
					}
				}
			}
		}
	}`, userPageSize)

	vars := map[string]any{
		"search": fmt.Sprintf("type:user location:%s sort:followers-desc", location),
	}
	if cursor != "" {
		vars["cursor"] = cursor
	}

	return request{Query: query, Variables: vars}.encode()
}

// limitQuery builds the request body for the rateLimit lookup.
func limitQuery() ([]byte, error) {
	return request{Query: `
	query {
		rateLimit {
			limit
			remaining
			resetAt
		}
	}`}.encode()
}
