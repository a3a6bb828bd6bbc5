package cmd

import (
	"fmt"

	"deskbooker/internal/cli"
	"deskbooker/internal/logging"
	"deskbooker/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit   int
	flagHistoryDetails bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded booking runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryDetails, "details", false, "Show per-date outcomes for each run")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	logging.InitQuiet(flagDebug)

	st, err := store.Open(store.DefaultPath())
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer func() { _ = st.Close() }()

	runs, err := st.RecentRuns(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	var resultsFor func(int64) []store.RunResult
	if flagHistoryDetails {
		resultsFor = func(runID int64) []store.RunResult {
			rr, _ := st.RunResults(runID)
			return rr
		}
	}

	fmt.Print(cli.RenderHistory(runs, resultsFor))
	return nil
}
