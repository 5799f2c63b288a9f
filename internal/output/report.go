// Package output renders compiled statistics: as a markdown report, as a
// JSON file (atomically written), or as an HTML chart.
package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fosskers/credit/internal/credit"
)

// Report renders a human-readable markdown project report. When commits is
// true, the by-commits contributor ranking is included as well.
func Report(s credit.Statistics, repoName string, commits bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Project Report for %s\n\n", repoName)

	b.WriteString("## Issues\n")
	b.WriteString(issueSection(s))
	b.WriteString("\n## Pull Requests\n")
	b.WriteString(prSection(s))
	b.WriteString("\n## Contributors\n")
	b.WriteString(contributorSection(s, commits))

	return b.String()
}

func issueSection(s credit.Statistics) string {
	if s.AllIssues == 0 {
		return "No issues found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%d issues found, %d of which are now closed (%.1f%%).\n\n",
		s.AllIssues, s.AllClosedIssues, percent(s.AllClosedIssues, s.AllIssues))
	fmt.Fprintf(&b, "- %d (%.1f%%) of these received a response.\n",
		s.IssuesWithResponses, percent(s.IssuesWithResponses, s.AllIssues))
	fmt.Fprintf(&b, "- %d (%.1f%%) have an official response from a repo Owner or organization Member.\n",
		s.IssuesWithOfficialResponses, percent(s.IssuesWithOfficialResponses, s.AllIssues))
	b.WriteString(respTimeBlock("Response Times (any)", s.IssueFirstRespTime))
	b.WriteString(respTimeBlock("Response Times (official)", s.IssueOfficialFirstRespTime))

	return b.String()
}

func prSection(s credit.Statistics) string {
	if s.AllPRs == 0 {
		return "No Pull Requests found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%d Pull Requests found, %d of which are now merged (%.1f%%).\n",
		s.AllPRs, s.PRsMerged, percent(s.PRsMerged, s.AllPRs))
	fmt.Fprintf(&b, "%d have been closed without merging (%.1f%%).\n\n",
		s.PRsClosedWithoutMerging, percent(s.PRsClosedWithoutMerging, s.AllPRs))
	fmt.Fprintf(&b, "- %d (%.1f%%) of these received a response.\n",
		s.PRsWithResponses, percent(s.PRsWithResponses, s.AllPRs))
	fmt.Fprintf(&b, "- %d (%.1f%%) have an official response from a repo Owner or organization Member.\n",
		s.PRsWithOfficialResponses, percent(s.PRsWithOfficialResponses, s.AllPRs))
	b.WriteString(respTimeBlock("Response Times (any)", s.PRFirstRespTime))
	b.WriteString(respTimeBlock("Response Times (official)", s.PROfficialFirstRespTime))
	b.WriteString(respTimeBlock("Time-to-Merge", s.PRMergeTime))

	return b.String()
}

func contributorSection(s credit.Statistics, commits bool) string {
	var b strings.Builder

	b.WriteString("\nTop 10 Commentors (Issues and PRs):\n")
	b.WriteString(ranking(s.Commentors))
	b.WriteString("\nTop 10 Code Contributors (by merged PRs):\n")
	b.WriteString(ranking(s.CodeContributors))
	if commits {
		b.WriteString("\nTop 10 Code Contributors (by commits-in-merged-PRs):\n")
		b.WriteString(ranking(s.ContributorCommits))
	}

	return b.String()
}

func respTimeBlock(title string, rt *credit.ResponseTimes) string {
	median, mean := "None", "None"
	if rt != nil {
		median = Period(rt.Median)
		mean = Period(rt.Mean)
	}
	return fmt.Sprintf("\n%s:\n- Median: %s\n- Average: %s\n", title, median, mean)
}

// ranking renders the top ten entries of a count map, highest first. Ties are
// broken alphabetically so the output is stable.
func ranking(counts map[string]int) string {
	type entry struct {
		name  string
		count int
	}

	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	var b strings.Builder
	for i, e := range entries {
		if i == 10 {
			break
		}
		fmt.Fprintf(&b, "%2d. %s: %d\n", i+1, e.name, e.count)
	}

	return b.String()
}

// Period phrases a duration the way a human would report it: in days past two
// full days, otherwise hours, otherwise minutes.
func Period(d time.Duration) string {
	hours := int64(d / time.Hour)
	switch {
	case hours > 48:
		return fmt.Sprintf("%d days", hours/24)
	case hours > 1:
		return fmt.Sprintf("%d hours", hours)
	case hours == 1:
		return "1 hour"
	default:
		return fmt.Sprintf("%d minutes", int64(d/time.Minute))
	}
}

func percent(a, b int) float64 {
	return 100.0 * float64(a) / float64(b)
}
