package credit

import "fmt"

// Validate scans a Postings value for data anomalies that upstream clock skew
// or API inconsistencies can produce. Anomalies are reported, not rejected:
// the aggregation passes such values through arithmetically.
func Validate(p Postings) []string {
	var warnings []string

	for n, i := range p.Issues {
		warnings = append(warnings, validateThread(fmt.Sprintf("issue %d", n), i.Thread)...)
	}
	for n, pr := range p.PRs {
		warnings = append(warnings, validateThread(fmt.Sprintf("PR %d", n), pr.Thread)...)
		if pr.Merged != nil && pr.Closed == nil {
			warnings = append(warnings, fmt.Sprintf("PR %d: merged but never closed", n))
		}
	}

	return warnings
}

func validateThread(label string, t Thread) []string {
	var warnings []string

	if t.Closed != nil && t.Closed.Before(t.Posted) {
		warnings = append(warnings, fmt.Sprintf("%s: closed before it was posted", label))
	}
	if t.FirstResponse != nil && t.FirstResponse.Before(t.Posted) {
		warnings = append(warnings, fmt.Sprintf("%s: first response predates the posting", label))
	}
	if t.FirstResponse != nil && t.FirstOfficialResponse != nil &&
		t.FirstOfficialResponse.Before(*t.FirstResponse) {
		warnings = append(warnings, fmt.Sprintf("%s: official response predates the first response", label))
	}

	return warnings
}
