package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fosskers/credit/internal/credit"
	"github.com/fosskers/credit/internal/github"
	"github.com/fosskers/credit/internal/state"
)

var location string

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Find the top contributors in a given location",
	Long: `Find the top 100 users of a location, ranked by their public
contribution counts and weighted by follower counts.

Example:
  credit users --location Japan --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tracker := state.NewTracker(jsonOut)
		client, err := newClient(tracker)
		if err != nil {
			return err
		}

		search, err := github.UserContributions(cmd.Context(), client, location)
		if err != nil {
			return err
		}

		ranked := credit.RankUsers(search)

		if jsonOut {
			raw, err := json.Marshal(ranked)
			if err != nil {
				return fmt.Errorf("encoding user contributions: %w", err)
			}
			fmt.Println(string(raw))
			return nil
		}

		fmt.Printf("%d users found in %s.\n\n", ranked.TotalUsers, location)
		for i, user := range ranked.Contributions {
			fmt.Printf("%3d. %s: %d\n", i+1, user.Login, user.PublicContributions)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.Flags().StringVarP(&location, "location", "l", "", "Location to search users in")
	_ = usersCmd.MarkFlagRequired("location")
}
