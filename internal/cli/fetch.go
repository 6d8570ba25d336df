package cli

import "github.com/spf13/cobra"

var (
	fetchStart    string
	fetchEnd      string
	fetchSkipSeen bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch news records from an upstream source",
}

func init() {
	fetchCmd.PersistentFlags().StringVar(&fetchStart, "start", "", "window start date (YYYY-MM-DD, overrides config)")
	fetchCmd.PersistentFlags().StringVar(&fetchEnd, "end", "", "window end date (YYYY-MM-DD, overrides config)")
	fetchCmd.PersistentFlags().BoolVar(&fetchSkipSeen, "skip-seen", false, "skip records already exported by earlier runs")

	rootCmd.AddCommand(fetchCmd)
}

// fetchWindow resolves the fetch window from flags and config.
func fetchWindow(cfgStart, cfgEnd string) (start, end string) {
	start, end = cfgStart, cfgEnd
	if fetchStart != "" {
		start = fetchStart
	}
	if fetchEnd != "" {
		end = fetchEnd
	}
	return start, end
}
