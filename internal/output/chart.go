package output

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fosskers/credit/internal/credit"
)

// Chart renders the top commentors and code contributors of a statistics
// snapshot as an HTML bar chart.
func Chart(path string, s credit.Statistics) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Repository Contributions",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Top Contributors",
		}),
	)

	names, comments := topEntries(s.Commentors, 10)
	merges := make([]opts.BarData, 0, len(names))
	for _, name := range names {
		merges = append(merges, opts.BarData{Value: s.CodeContributors[name]})
	}

	bar.SetXAxis(names).
		AddSeries("Comments", comments).
		AddSeries("Merged PRs", merges)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file %s: %w", path, err)
	}
	defer file.Close()

	if err := bar.Render(file); err != nil {
		return fmt.Errorf("rendering chart to %s: %w", path, err)
	}

	return nil
}

// topEntries picks the n highest-count names of a count map, returning the
// names and their counts as chart data, in rank order.
func topEntries(counts map[string]int, n int) ([]string, []opts.BarData) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > n {
		names = names[:n]
	}

	data := make([]opts.BarData, 0, len(names))
	for _, name := range names {
		data = append(data, opts.BarData{Value: counts[name]})
	}

	return names, data
}
