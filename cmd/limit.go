package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fosskers/credit/internal/github"
)

var limitCmd = &cobra.Command{
	Use:   "limit",
	Short: "Check the remaining API quota of your token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(nil)
		if err != nil {
			return err
		}

		limit, err := github.Quota(cmd.Context(), client)
		if err != nil {
			return err
		}

		if jsonOut {
			raw, err := json.Marshal(limit)
			if err != nil {
				return fmt.Errorf("encoding rate limit: %w", err)
			}
			fmt.Println(string(raw))
			return nil
		}

		pterm.Info.Printf("%d of %d calls remaining. Resets at %s.\n",
			limit.Remaining, limit.Limit, limit.ResetAt.Local().Format("15:04:05"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(limitCmd)
}
