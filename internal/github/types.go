// Package github implements the GitHub API surface used by credit: a small
// authenticated HTTP client, GraphQL query construction, and pagination over
// both cursor-style (GraphQL) and Link-header-style (REST) collections.
package github

import (
	"encoding/json"
	"fmt"
	"time"
)

// Ghost is the sentinel login used for accounts that no longer resolve
// (deleted or renamed users). GitHub renders these as @ghost.
const Ghost = "@ghost"

// PageInfo is the cursor pagination block returned by GraphQL connections.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// Node wraps a single edge node in a GraphQL connection.
type Node[A any] struct {
	Node A `json:"node"`
}

// Edges is a GraphQL connection without pagination info.
type Edges[A any] struct {
	Edges []Node[A] `json:"edges"`
}

// Paged is a GraphQL connection with pagination info.
type Paged[A any] struct {
	PageInfo PageInfo  `json:"pageInfo"`
	Edges    []Node[A] `json:"edges"`
}

// Nodes unwraps the edge nodes into a plain slice.
func (p Paged[A]) Nodes() []A {
	out := make([]A, 0, len(p.Edges))
	for _, e := range p.Edges {
		out = append(out, e.Node)
	}
	return out
}

// Author is a reduced GitHub user. A nil *Author on a comment or issue means
// the account has been deleted.
type Author struct {
	Login string `json:"login"`
}

// Name resolves an optional author to a login, falling back to the Ghost
// sentinel for deleted accounts.
func (a *Author) Name() string {
	if a == nil {
		return Ghost
	}
	return a.Login
}

// Association describes a commenter's relationship to the repository.
type Association string

// The closed set of author associations reported by the GraphQL API.
const (
	AssocOwner        Association = "OWNER"
	AssocMember       Association = "MEMBER"
	AssocCollaborator Association = "COLLABORATOR"
	AssocContributor  Association = "CONTRIBUTOR"
	AssocAuthor       Association = "AUTHOR"
	AssocNone         Association = "NONE"
)

// UnmarshalJSON maps any association outside the closed set to AssocNone, so
// new API values (e.g. FIRST_TIME_CONTRIBUTOR) never break decoding.
func (a *Association) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch Association(raw) {
	case AssocOwner, AssocMember, AssocCollaborator, AssocContributor, AssocAuthor:
		*a = Association(raw)
	default:
		*a = AssocNone
	}
	return nil
}

// IsOfficial reports whether the association counts as an "official" repository
// presence: an Owner, an organization Member, or an invited Collaborator.
func (a Association) IsOfficial() bool {
	switch a {
	case AssocOwner, AssocMember, AssocCollaborator:
		return true
	default:
		return false
	}
}

// IsAuthor reports whether the commenter is the thread's own opener.
func (a Association) IsAuthor() bool {
	return a == AssocAuthor
}

// Comment is a single issue or PR comment.
type Comment struct {
	Author            *Author     `json:"author"`
	AuthorAssociation Association `json:"authorAssociation"`
	CreatedAt         time.Time   `json:"createdAt"`
}

// CommitCount carries the commit total of a Pull Request.
type CommitCount struct {
	TotalCount int `json:"totalCount"`
}

// Issue is the shared wire shape of both an `issues` and a `pullRequests`
// GraphQL call. MergedAt and Commits are only populated for Pull Requests.
type Issue struct {
	Author    *Author        `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
	ClosedAt  *time.Time     `json:"closedAt"`
	MergedAt  *time.Time     `json:"mergedAt"`
	Comments  Edges[Comment] `json:"comments"`
	Commits   *CommitCount   `json:"commits"`
}

// issueRepository resolves the shared Issue/PullRequest response shape. The
// two collection fields are mutually exclusive: whichever is present in the
// payload determines which call this was the answer to.
type issueRepository struct {
	Repository struct {
		Issues       *Paged[Issue] `json:"issues"`
		PullRequests *Paged[Issue] `json:"pullRequests"`
	} `json:"repository"`
}

// page returns whichever collection the response carried.
func (r issueRepository) page() (Paged[Issue], error) {
	switch {
	case r.Repository.Issues != nil:
		return *r.Repository.Issues, nil
	case r.Repository.PullRequests != nil:
		return *r.Repository.PullRequests, nil
	default:
		return Paged[Issue]{}, fmt.Errorf("response carried neither issues nor pullRequests")
	}
}

// RateLimit is the GraphQL API quota for a token.
type RateLimit struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

// UserContribs is a user found via location search, with enough of their
// contribution calendar to rank them.
type UserContribs struct {
	Login         string    `json:"login"`
	Name          *string   `json:"name"`
	Followers     Followers `json:"followers"`
	Contributions Contribs  `json:"contributionsCollection"`
}

// PublicContributions is the public contribution count: the calendar total
// minus contributions in private repositories.
func (u UserContribs) PublicContributions() int {
	c := u.Contributions
	return c.Calendar.TotalContributions - c.RestrictedContributionsCount
}

// Followers is a count-only followers connection.
type Followers struct {
	TotalCount int `json:"totalCount"`
}

// Contribs is the contributionsCollection block of a user.
type Contribs struct {
	Calendar                     Calendar `json:"contributionCalendar"`
	RestrictedContributionsCount int      `json:"restrictedContributionsCount"`
}

// Calendar is the contribution calendar of a user.
type Calendar struct {
	TotalContributions int `json:"totalContributions"`
}

// Contributor is a REST API repository contributor.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	Type          string `json:"type"`
}
