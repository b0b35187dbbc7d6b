package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	configfile "github.com/openeats/dinesync/internal/adapters/driven/config/file"
	"github.com/openeats/dinesync/internal/core/services"
	"github.com/openeats/dinesync/internal/logger"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run reconciliation on a fixed cadence",
	Long: `Runs an immediate sync, then one per configured interval, until
interrupted. The config file is watched; interval changes apply on the
next tick.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	settings, path, err := loadSettings()
	if err != nil {
		return err
	}

	runner, cleanup, err := buildRunner(settings, true)
	if err != nil {
		return err
	}
	defer cleanup()

	daemon := services.NewDaemon(runner, settings.Interval)

	stopWatch, err := configfile.Watch(path, func() {
		reloaded, err := configfile.Load(path)
		if err != nil {
			logger.Warn("Config reload failed: %v", err)
			return
		}
		daemon.SetInterval(reloaded.Interval)
		logger.Info("Config reloaded, interval now %s", reloaded.Interval)
	})
	if err != nil {
		logger.Warn("Config watch unavailable: %v", err)
	} else {
		defer stopWatch()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received %s, shutting down", sig)
		daemon.Stop()
		cancel()
	}()

	cmd.Printf("Daemon started, interval %s\n", settings.Interval)
	if err := daemon.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
