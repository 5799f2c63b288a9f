package credit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fosskers/credit/internal/github"
)

func ts(day int) time.Time {
	return time.Date(2020, 1, day, 0, 0, 0, 0, time.UTC)
}

func comment(login string, assoc github.Association, at time.Time) github.Node[github.Comment] {
	var author *github.Author
	if login != "" {
		author = &github.Author{Login: login}
	}
	return github.Node[github.Comment]{Node: github.Comment{
		Author:            author,
		AuthorAssociation: assoc,
		CreatedAt:         at,
	}}
}

func rawIssue(comments ...github.Node[github.Comment]) github.Issue {
	return github.Issue{
		Author:    &github.Author{Login: "opener"},
		CreatedAt: ts(1),
		Comments:  github.Edges[github.Comment]{Edges: comments},
	}
}

func TestThreadAuthorSkip(t *testing.T) {
	t.Parallel()

	// The opener comments on their own thread first; the real first
	// responder is the second commenter.
	thread := NewThread(rawIssue(
		comment("opener", github.AssocAuthor, ts(2)),
		comment("helper", github.AssocNone, ts(3)),
	))

	require.NotNil(t, thread.FirstResponder)
	assert.Equal(t, "helper", *thread.FirstResponder)
	require.NotNil(t, thread.FirstResponse)
	assert.Equal(t, ts(3), *thread.FirstResponse)
}

func TestThreadOfficialIndependence(t *testing.T) {
	t.Parallel()

	// An unofficial response at t2, an official one at t3: both fields must
	// be set from their own scans.
	thread := NewThread(rawIssue(
		comment("passerby", github.AssocNone, ts(2)),
		comment("maintainer", github.AssocOwner, ts(3)),
	))

	require.NotNil(t, thread.FirstResponse)
	assert.Equal(t, ts(2), *thread.FirstResponse)
	require.NotNil(t, thread.FirstOfficialResponse)
	assert.Equal(t, ts(3), *thread.FirstOfficialResponse)
}

func TestThreadNoComments(t *testing.T) {
	t.Parallel()

	thread := NewThread(rawIssue())

	assert.Nil(t, thread.FirstResponder)
	assert.Nil(t, thread.FirstResponse)
	assert.Nil(t, thread.FirstOfficialResponse)
	assert.Empty(t, thread.Comments)
}

func TestThreadCommentCounts(t *testing.T) {
	t.Parallel()

	thread := NewThread(rawIssue(
		comment("alice", github.AssocNone, ts(2)),
		comment("alice", github.AssocNone, ts(3)),
		comment("bob", github.AssocNone, ts(4)),
	))

	assert.Equal(t, map[string]int{"alice": 2, "bob": 1}, thread.Comments)
}

func TestThreadGhostFallback(t *testing.T) {
	t.Parallel()

	// A deleted account's comment counts under the ghost sentinel.
	thread := NewThread(rawIssue(
		comment("", github.AssocNone, ts(2)),
		comment("", github.AssocNone, ts(3)),
	))

	require.NotNil(t, thread.FirstResponder)
	assert.Equal(t, github.Ghost, *thread.FirstResponder)
	assert.Equal(t, map[string]int{github.Ghost: 2}, thread.Comments)
}

func TestNewPR(t *testing.T) {
	t.Parallel()

	raw := rawIssue()
	merged := ts(5)
	closed := ts(5)
	raw.MergedAt = &merged
	raw.ClosedAt = &closed
	raw.Commits = &github.CommitCount{TotalCount: 7}

	pr := NewPR(raw)
	assert.True(t, pr.IsMerged())
	assert.False(t, pr.IsClosedNotMerged())
	assert.Equal(t, 7, pr.Commits)

	// Closed but never merged.
	raw.MergedAt = nil
	raw.Commits = nil
	pr = NewPR(raw)
	assert.False(t, pr.IsMerged())
	assert.True(t, pr.IsClosedNotMerged())
	assert.Zero(t, pr.Commits)
}

func TestParseRepo(t *testing.T) {
	t.Parallel()

	repo, err := ParseRepo("fosskers/aura")
	require.NoError(t, err)
	assert.Equal(t, Repo{Owner: "fosskers", Name: "aura"}, repo)
	assert.Equal(t, "fosskers/aura", repo.String())

	for _, bad := range []string{"aura", "/aura", "fosskers/", ""} {
		_, err := ParseRepo(bad)
		assert.Error(t, err, bad)
	}
}
