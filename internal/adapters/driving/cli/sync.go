package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openeats/dinesync/internal/core/domain"
	"github.com/openeats/dinesync/internal/core/ports/driving"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass against the place provider",
	Long: `Fetches the directory snapshot and the provider's listings, then
creates, updates or skips each listing. Per-record failures are counted
and do not stop the run.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	settings, path, err := loadSettings()
	if err != nil {
		return err
	}
	cmd.Printf("Using config: %s\n", path)

	runner, cleanup, err := buildRunner(settings, false)
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := syncWithProgress(context.Background(), cmd, runner)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	cmd.Printf("Created: %d  Updated: %d  Unchanged: %d  Errors: %d\n",
		summary.Created, summary.Updated, summary.Unchanged, summary.Errors)
	return nil
}

// syncWithProgress runs the sync while displaying progress updates.
func syncWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	runner driving.SyncRunner,
) (*domain.SyncSummary, error) {
	type result struct {
		summary *domain.SyncSummary
		err     error
	}

	// Start sync in goroutine
	resCh := make(chan result, 1)
	go func() {
		summary, err := runner.Run(ctx)
		resCh <- result{summary, err}
	}()

	// Poll status every 500ms
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastProcessed := -1
	for {
		select {
		case res := <-resCh:
			status := runner.Status()
			if status.Processed > 0 {
				cmd.Printf("\rProcessed %d records (%d errors)\n",
					status.Processed, status.Errors)
			}
			return res.summary, res.err
		case <-ticker.C:
			status := runner.Status()
			if status.Phase == domain.PhaseReconciling && status.Processed > lastProcessed {
				cmd.Printf("\rBatch %d/%d, %d records processed",
					status.Batch, status.BatchCount, status.Processed)
				lastProcessed = status.Processed
			}
		}
	}
}
