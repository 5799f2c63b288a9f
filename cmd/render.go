package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fosskers/credit/internal/output"
)

var (
	chartFile     string
	renderCommits bool
)

var renderCmd = &cobra.Command{
	Use:   "render <stats.json>",
	Short: "Re-render previously saved statistics",
	Long: `Re-render a statistics file saved by 'credit repo --output' as a
markdown report, without any network access.

Examples:
  credit render stats.json
  credit render stats.json --chart contributors.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := output.ReadStatistics(args[0])
		if err != nil {
			return err
		}

		if chartFile != "" {
			return output.Chart(chartFile, stats)
		}

		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		fmt.Println(output.Report(stats, name, renderCommits))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&chartFile, "chart", "", "Render an HTML contributor chart to this file instead")
	renderCmd.Flags().BoolVar(&renderCommits, "commits", false, "Include the by-commits contributor ranking")
}
