package output

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fosskers/credit/internal/credit"
)

func TestPeriod(t *testing.T) {
	t.Parallel()

	cases := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "0 minutes"},
		{45 * time.Minute, "45 minutes"},
		{time.Hour, "1 hour"},
		{90 * time.Minute, "1 hour"},
		{5 * time.Hour, "5 hours"},
		{48 * time.Hour, "48 hours"},
		{49 * time.Hour, "2 days"},
		{10 * 24 * time.Hour, "10 days"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Period(c.d), c.d.String())
	}
}

func TestReportEmpty(t *testing.T) {
	t.Parallel()

	report := Report(credit.Statistics{}, "nobody/nothing", false)
	assert.Contains(t, report, "# Project Report for nobody/nothing")
	assert.Contains(t, report, "No issues found.")
	assert.Contains(t, report, "No Pull Requests found.")
}

func TestReportSections(t *testing.T) {
	t.Parallel()

	stats := credit.Statistics{
		Commentors:                  map[string]int{"alice": 3, "bob": 1},
		CodeContributors:            map[string]int{"alice": 2},
		ContributorCommits:          map[string]int{"alice": 9},
		AllIssues:                   10,
		AllClosedIssues:             5,
		IssuesWithResponses:         8,
		IssuesWithOfficialResponses: 4,
		IssueFirstRespTime:          &credit.ResponseTimes{Median: 2 * time.Hour, Mean: 3 * time.Hour},
		AllPRs:                      4,
		PRsMerged:                   2,
		PRsClosedWithoutMerging:     1,
	}

	report := Report(stats, "fosskers/aura", false)
	assert.Contains(t, report, "10 issues found, 5 of which are now closed (50.0%)")
	assert.Contains(t, report, "4 Pull Requests found, 2 of which are now merged (50.0%)")
	assert.Contains(t, report, "- Median: 2 hours")
	assert.Contains(t, report, "- Average: 3 hours")
	// Absent distributions render as None, not as a zero duration.
	assert.Contains(t, report, "- Median: None")
	assert.NotContains(t, report, "by commits-in-merged-PRs")

	withCommits := Report(stats, "fosskers/aura", true)
	assert.Contains(t, withCommits, "by commits-in-merged-PRs")
	assert.Contains(t, withCommits, "alice: 9")
}

func TestRankingOrderAndCap(t *testing.T) {
	t.Parallel()

	counts := map[string]int{
		"carol": 5, "alice": 5, "bob": 9,
		"d": 1, "e": 1, "f": 1, "g": 1, "h": 1, "i": 1, "j": 1, "k": 1,
	}

	lines := strings.Split(strings.TrimSpace(ranking(counts)), "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, lines[0], "1. bob: 9")
	// Ties break alphabetically.
	assert.Contains(t, lines[1], "2. alice: 5")
	assert.Contains(t, lines[2], "3. carol: 5")
}
