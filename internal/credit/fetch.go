package credit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fosskers/credit/internal/github"
	"github.com/fosskers/credit/internal/state"
)

// Repo identifies one repository to analyze.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepo splits an "owner/name" argument.
func ParseRepo(arg string) (Repo, error) {
	owner, name, ok := strings.Cut(arg, "/")
	if !ok || owner == "" || name == "" {
		return Repo{}, fmt.Errorf("malformed repository %q, expected owner/name", arg)
	}
	return Repo{Owner: owner, Name: name}, nil
}

// FetchOptions controls what RepoThreads pulls and how.
type FetchOptions struct {
	// Also request per-PR commit counts.
	Commits bool
	// Fetch issues and PRs one after the other instead of concurrently.
	// Aggressive parallelism can trigger GitHub's abuse detection.
	Serial bool
	// Only consider threads opened inside this window.
	Start *time.Time
	End   *time.Time
}

// RepoThreads looks up the Thread statistics of all Issues and Pull Requests
// of a repository. The two collections are fetched concurrently unless serial
// mode was requested; each produces its own slice, merged only after both
// finish.
func RepoThreads(ctx context.Context, c *github.Client, opts FetchOptions, repo Repo) (Postings, error) {
	getIssues := func() ([]Issue, error) {
		return allIssues(ctx, c, opts, repo)
	}
	getPRs := func() ([]PR, error) {
		return allPRs(ctx, c, opts, repo)
	}

	if opts.Serial {
		issues, err := getIssues()
		if err != nil {
			return Postings{}, err
		}
		prs, err := getPRs()
		if err != nil {
			return Postings{}, err
		}
		return Postings{Issues: issues, PRs: prs}, nil
	}

	var wg sync.WaitGroup
	var issues []Issue
	var prs []PR
	var issueErr, prErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		issues, issueErr = getIssues()
	}()
	go func() {
		defer wg.Done()
		prs, prErr = getPRs()
	}()
	wg.Wait()

	if issueErr != nil {
		return Postings{}, issueErr
	}
	if prErr != nil {
		return Postings{}, prErr
	}

	return Postings{Issues: issues, PRs: prs}, nil
}

func allIssues(ctx context.Context, c *github.Client, opts FetchOptions, repo Repo) ([]Issue, error) {
	raw, err := github.Issues(ctx, c, github.ModeIssues, repo.Owner, repo.Name, opts.End)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, i := range raw {
		if inWindow(i.CreatedAt, opts.Start, opts.End) {
			issues = append(issues, NewIssue(i))
		}
	}
	return issues, nil
}

func allPRs(ctx context.Context, c *github.Client, opts FetchOptions, repo Repo) ([]PR, error) {
	mode := github.ModePRs
	if opts.Commits {
		mode = github.ModePRsWithCommits
	}

	raw, err := github.Issues(ctx, c, mode, repo.Owner, repo.Name, opts.End)
	if err != nil {
		return nil, err
	}

	var prs []PR
	for _, i := range raw {
		if inWindow(i.CreatedAt, opts.Start, opts.End) {
			prs = append(prs, NewPR(i))
		}
	}
	return prs, nil
}

// inWindow reports whether a creation time falls inside the optional
// start/end boundaries, both inclusive.
func inWindow(created time.Time, start, end *time.Time) bool {
	if start != nil && created.Before(*start) {
		return false
	}
	if end != nil && created.After(*end) {
		return false
	}
	return true
}

// RepoError is a failure fetching one repository, carried alongside the
// successes of the others.
type RepoError struct {
	Repo Repo
	Err  error
}

func (e RepoError) Error() string {
	return fmt.Sprintf("%s: %v", e.Repo, e.Err)
}

// AllRepoThreads fetches every requested repository over a bounded worker
// pool. A failure in one repository does not abort the others: all failures
// are collected and returned beside the combined result. Each worker
// produces its own Postings; merging happens only after the pool drains.
func AllRepoThreads(ctx context.Context, c *github.Client, tracker *state.Tracker, opts FetchOptions, repos []Repo, workers int) (Postings, []RepoError) {
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	var combined Postings
	var failures []RepoError

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for _, repo := range repos {
		wg.Add(1)
		go func(repo Repo) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			postings, err := RepoThreads(ctx, c, opts, repo)
			tracker.RepoDone(repo.String(), err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, RepoError{Repo: repo, Err: err})
				return
			}
			combined = combined.Combine(postings)
		}(repo)
	}
	wg.Wait()

	return combined, failures
}
