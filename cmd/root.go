// Package cmd provides the command-line interface for credit.
// It defines the Cobra command structure, flag handling, and command execution
// for measuring GitHub repository contributions.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fosskers/credit/internal/github"
	"github.com/fosskers/credit/internal/state"
)

// Version is set from main at startup.
var Version = "dev"

var (
	token   string
	jsonOut bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "credit",
	Short: "Measure Github repository contributions",
	Long: `credit measures the contributions made to Github repositories:
response times to Issues and Pull Requests, merge rates, and the people
behind them.`,
	SilenceUsage: true,
}

func Execute() {
	rootCmd.Version = Version
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "Github personal access token (or set GITHUB_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// newClient builds the authenticated API client, wiring its per-call observer
// into the given tracker. The token flag falls back to the GITHUB_TOKEN
// environment variable.
func newClient(tracker *state.Tracker) (*github.Client, error) {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("no Github token given: pass --token or set GITHUB_TOKEN")
	}

	log := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("building logger: %w", err)
		}
		log = l
	}

	opts := []github.Option{github.WithLogger(log)}
	if tracker != nil {
		opts = append(opts, github.WithObserver(tracker.Tick))
	}

	return github.NewClient(token, opts...), nil
}
