package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fosskers/credit/internal/credit"
	"github.com/fosskers/credit/internal/github"
	"github.com/fosskers/credit/internal/state"
)

var contributorsCmd = &cobra.Command{
	Use:   "contributors <owner/name>",
	Short: "List the commit contributors of a repository",
	Long: `List every contributor of a repository with their commit counts,
most active first, as reported by the REST API.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := credit.ParseRepo(args[0])
		if err != nil {
			return err
		}

		tracker := state.NewTracker(jsonOut)
		client, err := newClient(tracker)
		if err != nil {
			return err
		}

		contributors, err := github.Contributors(cmd.Context(), client, repo.Owner, repo.Name)
		if err != nil {
			return err
		}

		if jsonOut {
			raw, err := json.Marshal(contributors)
			if err != nil {
				return fmt.Errorf("encoding contributors: %w", err)
			}
			fmt.Println(string(raw))
			return nil
		}

		fmt.Printf("%d contributors to %s.\n\n", len(contributors), repo)
		for i, c := range contributors {
			fmt.Printf("%3d. %s: %d\n", i+1, c.Login, c.Contributions)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contributorsCmd)
}
