package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fosskers/credit/internal/credit"
	"github.com/fosskers/credit/internal/output"
	"github.com/fosskers/credit/internal/state"
)

var (
	startDate  string
	endDate    string
	commits    bool
	serial     bool
	maxWorkers int
	outputFile string
)

var repoCmd = &cobra.Command{
	Use:   "repo <owner/name>...",
	Short: "Analyze the contributions to one or more repositories",
	Long: `Analyze the Issue and Pull Request activity of one or more repositories.

Examples:
  credit repo fosskers/aura
  credit repo rust-lang/rust --start 2020-01-01 --end 2020-06-30
  credit repo owner/one owner/two --commits --output stats.json
  credit repo owner/big-repo --serial    # avoid abuse-detection throttling`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repos := make([]credit.Repo, 0, len(args))
		for _, arg := range args {
			repo, err := credit.ParseRepo(arg)
			if err != nil {
				return err
			}
			repos = append(repos, repo)
		}

		opts := credit.FetchOptions{Commits: commits, Serial: serial}
		var err error
		if opts.Start, err = parseDate(startDate); err != nil {
			return err
		}
		if opts.End, err = parseDate(endDate); err != nil {
			return err
		}

		tracker := state.NewTracker(jsonOut)
		client, err := newClient(tracker)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		postings, failures := credit.AllRepoThreads(ctx, client, tracker, opts, repos, maxWorkers)
		for _, f := range failures {
			fmt.Fprintln(os.Stderr, f.Error())
		}
		if len(failures) == len(repos) {
			return fmt.Errorf("no results to show")
		}

		if verbose {
			for _, w := range credit.Validate(postings) {
				pterm.Warning.Println(w)
			}
		}

		stats := postings.Statistics()
		tracker.Summary()

		if outputFile != "" {
			if err := output.WriteStatistics(outputFile, stats); err != nil {
				return err
			}
		}

		if jsonOut {
			raw, err := json.Marshal(stats)
			if err != nil {
				return fmt.Errorf("encoding statistics: %w", err)
			}
			fmt.Println(string(raw))
			return nil
		}

		names := make([]string, 0, len(repos))
		for _, r := range repos {
			names = append(names, r.Name)
		}
		fmt.Println(output.Report(stats, strings.Join(names, ", "), commits))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(repoCmd)

	repoCmd.Flags().StringVar(&startDate, "start", "", "Only consider threads opened on or after this date (YYYY-MM-DD)")
	repoCmd.Flags().StringVar(&endDate, "end", "", "Only consider threads opened on or before this date (YYYY-MM-DD)")
	repoCmd.Flags().BoolVar(&commits, "commits", false, "Also count commits in merged PRs (slower)")
	repoCmd.Flags().BoolVar(&serial, "serial", false, "Fetch issues and PRs serially instead of concurrently")
	repoCmd.Flags().IntVarP(&maxWorkers, "workers", "w", 3, "Maximum number of repositories fetched concurrently")
	repoCmd.Flags().StringVarP(&outputFile, "output", "O", "", "Also save the statistics to a JSON file")
}

// parseDate parses an optional YYYY-MM-DD flag value.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("malformed date %q, expected YYYY-MM-DD", value)
	}
	return &t, nil
}
