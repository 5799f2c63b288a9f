// Package credit holds the domain core: conversation threads, their
// classification, and the statistics folded over them.
package credit

import (
	"time"

	"github.com/fosskers/credit/internal/github"
)

// Thread is the conversation activity of a single Issue or Pull Request,
// modeled uniformly.
type Thread struct {
	// Who opened the thread?
	Author string
	// When was the thread opened?
	Posted time.Time
	// If it's already closed, when was it?
	Closed *time.Time
	// Who responded first?
	FirstResponder *string
	// When, if ever, was the first response?
	FirstResponse *time.Time
	// When, if ever, was there an "official" response?
	FirstOfficialResponse *time.Time
	// Comment counts of everyone who participated.
	Comments map[string]int
}

// Issue is a GitHub Issue.
type Issue struct {
	Thread
}

// PR is a GitHub Pull Request.
type PR struct {
	Thread
	Merged  *time.Time
	Commits int
}

// IsMerged reports whether this Pull Request was merged.
func (p *PR) IsMerged() bool {
	return p.Merged != nil
}

// IsClosedNotMerged reports whether this Pull Request was closed without
// being merged.
func (p *PR) IsClosedNotMerged() bool {
	return p.Closed != nil && !p.IsMerged()
}

// NewThread classifies one fetched issue or PR: who responded first (skipping
// any self-comments by the opener), when the first official response arrived,
// and how many comments each participant left. Only the first page of
// comments is considered; comment activity past it is an accepted blind spot.
func NewThread(issue github.Issue) Thread {
	comments := make([]github.Comment, 0, len(issue.Comments.Edges))
	for _, edge := range issue.Comments.Edges {
		comments = append(comments, edge.Node)
	}

	// The first physical comment might be from the opener themselves.
	var firstResponder *string
	var firstResponse *time.Time
	for _, c := range comments {
		if !c.AuthorAssociation.IsAuthor() {
			name := c.Author.Name()
			firstResponder = &name
			created := c.CreatedAt
			firstResponse = &created
			break
		}
	}

	// Scanned independently from the start, not from the first response.
	var firstOfficial *time.Time
	for _, c := range comments {
		if c.AuthorAssociation.IsOfficial() {
			created := c.CreatedAt
			firstOfficial = &created
			break
		}
	}

	counts := make(map[string]int, len(comments))
	for _, c := range comments {
		counts[c.Author.Name()]++
	}

	return Thread{
		Author:                issue.Author.Name(),
		Posted:                issue.CreatedAt,
		Closed:                issue.ClosedAt,
		FirstResponder:        firstResponder,
		FirstResponse:         firstResponse,
		FirstOfficialResponse: firstOfficial,
		Comments:              counts,
	}
}

// NewIssue classifies a fetched issue.
func NewIssue(issue github.Issue) Issue {
	return Issue{Thread: NewThread(issue)}
}

// NewPR classifies a fetched Pull Request, carrying over its merge timestamp
// and commit count.
func NewPR(issue github.Issue) PR {
	commits := 0
	if issue.Commits != nil {
		commits = issue.Commits.TotalCount
	}

	return PR{
		Thread:  NewThread(issue),
		Merged:  issue.MergedAt,
		Commits: commits,
	}
}

// Postings is the full collection of Issue and PR threads for one or more
// repositories.
type Postings struct {
	Issues []Issue
	PRs    []PR
}

// Combine merges the results of two repository lookups by concatenation.
func (p Postings) Combine(other Postings) Postings {
	return Postings{
		Issues: append(p.Issues, other.Issues...),
		PRs:    append(p.PRs, other.PRs...),
	}
}
