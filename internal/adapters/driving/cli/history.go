package cli

import (
	"context"

	"github.com/spf13/cobra"

	historysqlite "github.com/openeats/dinesync/internal/adapters/driven/history/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sync runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10,
		"number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := historysqlite.NewStore("")
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		outcome := "ok"
		if !run.Success {
			outcome = "FAILED: " + run.Error
		}
		cmd.Printf("%s  %6.1fs  created=%d updated=%d unchanged=%d errors=%d  %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.DurationSeconds,
			run.Results.Created, run.Results.Updated,
			run.Results.Unchanged, run.Results.Errors,
			outcome)
	}
	return nil
}
