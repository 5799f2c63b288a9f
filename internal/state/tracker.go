// Package state tracks the progress of a collection run: API calls made,
// repositories completed, and user-facing status output.
//
// A Tracker is an explicit handle passed into every concurrent fetch branch.
// It is write-only from the branches' point of view and safe for concurrent
// use; there is no package-level instance.
package state

import (
	"sync/atomic"

	"github.com/pterm/pterm"
)

// Tracker accumulates run progress. The zero value is ready to use.
type Tracker struct {
	apiCalls  int64
	reposDone int64
	quiet     bool
}

// NewTracker returns a fresh tracker. When quiet is true, per-repo status
// lines are suppressed (useful when output goes to a pipe).
func NewTracker(quiet bool) *Tracker {
	return &Tracker{quiet: quiet}
}

// Tick records one completed API exchange. Safe for concurrent use; intended
// as the client's per-call observer.
func (t *Tracker) Tick() {
	atomic.AddInt64(&t.apiCalls, 1)
}

// APICalls reports how many API exchanges have completed so far.
func (t *Tracker) APICalls() int64 {
	return atomic.LoadInt64(&t.apiCalls)
}

// RepoDone records the outcome of one repository's fetch and prints a status
// line for it.
func (t *Tracker) RepoDone(repo string, err error) {
	atomic.AddInt64(&t.reposDone, 1)
	if t.quiet {
		return
	}
	if err != nil {
		pterm.Warning.Printf("%s: %v\n", repo, err)
	} else {
		pterm.Success.Printf("%s\n", repo)
	}
}

// Summary prints the final run totals.
func (t *Tracker) Summary() {
	if t.quiet {
		return
	}
	pterm.Info.Printf("%d repositories processed with %d API calls\n",
		atomic.LoadInt64(&t.reposDone), t.APICalls())
}
