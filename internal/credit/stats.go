package credit

import (
	"encoding/json"
	"sort"
	"time"
)

// ResponseTimes is the median/mean pair of a non-empty duration distribution.
//
// The median is the element at index len/2 of the ascending sort, also for
// even-length input. That asymmetry is long-standing observed behaviour and
// is kept as-is.
type ResponseTimes struct {
	Median time.Duration
	Mean   time.Duration
}

// responseTimesJSON is the wire form: whole seconds, matching the second
// precision of the upstream timestamps.
type responseTimesJSON struct {
	Median int64 `json:"median"`
	Mean   int64 `json:"mean"`
}

func (r ResponseTimes) MarshalJSON() ([]byte, error) {
	return json.Marshal(responseTimesJSON{
		Median: int64(r.Median / time.Second),
		Mean:   int64(r.Mean / time.Second),
	})
}

func (r *ResponseTimes) UnmarshalJSON(data []byte) error {
	var raw responseTimesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Median = time.Duration(raw.Median) * time.Second
	r.Mean = time.Duration(raw.Mean) * time.Second
	return nil
}

// eventDelay measures how long after a thread was posted some optional event
// occurred. The second result is false when the event never happened.
func eventDelay(posted time.Time, event *time.Time) (time.Duration, bool) {
	if event == nil {
		return 0, false
	}
	return event.Sub(posted), true
}

// responseTimes collapses a set of event delays into a distribution, or nil
// when no event ever occurred. The mean is accumulated as signed seconds in
// an int64 before converting back, so large inputs cannot overflow.
func responseTimes(delays []time.Duration) *ResponseTimes {
	if len(delays) == 0 {
		return nil
	}

	sorted := make([]time.Duration, len(delays))
	copy(sorted, delays)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum int64
	for _, d := range sorted {
		sum += int64(d / time.Second)
	}
	mean := time.Duration(sum/int64(len(sorted))) * time.Second

	return &ResponseTimes{
		Median: sorted[len(sorted)/2],
		Mean:   mean,
	}
}

// issueDelays projects an optional event time out of every issue thread and
// collects the delays of the events that occurred.
func issueDelays(issues []Issue, event func(Thread) *time.Time) []time.Duration {
	var delays []time.Duration
	for _, i := range issues {
		if d, ok := eventDelay(i.Posted, event(i.Thread)); ok {
			delays = append(delays, d)
		}
	}
	return delays
}

// prDelays is issueDelays for PR threads.
func prDelays(prs []PR, event func(PR) *time.Time) []time.Duration {
	var delays []time.Duration
	for _, p := range prs {
		if d, ok := eventDelay(p.Posted, event(p)); ok {
			delays = append(delays, d)
		}
	}
	return delays
}

// Statistics is the immutable snapshot compiled from a Postings value.
//
// For the relevant fields below, an "official" response is any made by a
// repository Owner, an organization Member, or an invited Collaborator.
type Statistics struct {
	// All issue/PR commentors.
	Commentors map[string]int `json:"commentors"`
	// All users who had PRs merged, and how many.
	CodeContributors map[string]int `json:"code_contributors"`
	// The commits-in-merged-PRs count for each user.
	ContributorCommits map[string]int `json:"contributor_commits"`
	// The count of all issues, opened or closed.
	AllIssues int `json:"all_issues"`
	// How many of the issues have been closed?
	AllClosedIssues int `json:"all_closed_issues"`
	// All issues that have been responded to in some way.
	IssuesWithResponses int `json:"issues_with_responses"`
	// All issues that have been responded to "officially".
	IssuesWithOfficialResponses int `json:"issues_with_official_responses"`
	// How long does it take for someone to respond to an issue?
	IssueFirstRespTime *ResponseTimes `json:"issue_first_resp_time"`
	// How long does it take for an "official" response?
	IssueOfficialFirstRespTime *ResponseTimes `json:"issue_official_first_resp_time"`
	// The count of all PRs, opened or closed.
	AllPRs int `json:"all_prs"`
	// All PRs that have been responded to in some way.
	PRsWithResponses int `json:"prs_with_responses"`
	// All PRs that have been responded to officially.
	PRsWithOfficialResponses int `json:"prs_with_official_responses"`
	// How long does it take for someone to respond to a PR?
	PRFirstRespTime *ResponseTimes `json:"pr_first_resp_time"`
	// How long does it take for an "official" response to a PR?
	PROfficialFirstRespTime *ResponseTimes `json:"pr_official_first_resp_time"`
	// How many PRs were merged?
	PRsMerged int `json:"prs_merged"`
	// The count of all PRs which were closed without being merged.
	PRsClosedWithoutMerging int `json:"prs_closed_without_merging"`
	// How long does it take for PRs to be merged?
	PRMergeTime *ResponseTimes `json:"pr_merge_time"`
}

// Statistics consumes the Postings to form all the statistics. Each metric is
// an independent single-pass reduction; none depends on another's result.
func (p Postings) Statistics() Statistics {
	allIssues := len(p.Issues)

	allClosedIssues := 0
	issuesWithResponses := 0
	issuesWithOfficial := 0
	for _, i := range p.Issues {
		if i.Closed != nil {
			allClosedIssues++
		}
		if i.FirstResponse != nil {
			issuesWithResponses++
		}
		if i.FirstOfficialResponse != nil {
			issuesWithOfficial++
		}
	}

	issueFirstResp := responseTimes(issueDelays(p.Issues, func(t Thread) *time.Time { return t.FirstResponse }))
	issueOfficialResp := responseTimes(issueDelays(p.Issues, func(t Thread) *time.Time { return t.FirstOfficialResponse }))

	allPRs := len(p.PRs)

	prsWithResponses := 0
	prsWithOfficial := 0
	prsMerged := 0
	prsClosedNotMerged := 0
	for _, pr := range p.PRs {
		if pr.FirstResponse != nil {
			prsWithResponses++
		}
		if pr.FirstOfficialResponse != nil {
			prsWithOfficial++
		}
		if pr.IsMerged() {
			prsMerged++
		}
		if pr.IsClosedNotMerged() {
			prsClosedNotMerged++
		}
	}

	prFirstResp := responseTimes(prDelays(p.PRs, func(pr PR) *time.Time { return pr.FirstResponse }))
	prOfficialResp := responseTimes(prDelays(p.PRs, func(pr PR) *time.Time { return pr.FirstOfficialResponse }))
	prMergeTime := responseTimes(prDelays(p.PRs, func(pr PR) *time.Time { return pr.Merged }))

	codeContributors := make(map[string]int)
	contributorCommits := make(map[string]int)
	for _, pr := range p.PRs {
		if pr.IsMerged() {
			codeContributors[pr.Author]++
			contributorCommits[pr.Author] += pr.Commits
		}
	}

	// Issue and PR comment maps are built independently, then merged.
	issueComments := make(map[string]int)
	for _, i := range p.Issues {
		mergeCounts(issueComments, i.Comments)
	}
	prComments := make(map[string]int)
	for _, pr := range p.PRs {
		mergeCounts(prComments, pr.Comments)
	}
	mergeCounts(issueComments, prComments)

	return Statistics{
		Commentors:                  issueComments,
		CodeContributors:            codeContributors,
		ContributorCommits:          contributorCommits,
		AllIssues:                   allIssues,
		AllClosedIssues:             allClosedIssues,
		IssuesWithResponses:         issuesWithResponses,
		IssuesWithOfficialResponses: issuesWithOfficial,
		IssueFirstRespTime:          issueFirstResp,
		IssueOfficialFirstRespTime:  issueOfficialResp,
		AllPRs:                      allPRs,
		PRsWithResponses:            prsWithResponses,
		PRsWithOfficialResponses:    prsWithOfficial,
		PRFirstRespTime:             prFirstResp,
		PROfficialFirstRespTime:     prOfficialResp,
		PRsMerged:                   prsMerged,
		PRsClosedWithoutMerging:     prsClosedNotMerged,
		PRMergeTime:                 prMergeTime,
	}
}

// mergeCounts folds b into a, summing the counts of shared keys.
func mergeCounts(a, b map[string]int) {
	for k, v := range b {
		a[k] += v
	}
}
