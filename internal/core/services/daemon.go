package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/openeats/dinesync/internal/core/domain"
	"github.com/openeats/dinesync/internal/core/ports/driving"
	"github.com/openeats/dinesync/internal/logger"
)

// Daemon runs the sync runner on a fixed cadence. It is the scheduled-job
// wrapper around a runner that otherwise executes once and exits.
type Daemon struct {
	runner   driving.SyncRunner
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewDaemon creates a daemon that triggers a run every interval.
func NewDaemon(runner driving.SyncRunner, interval time.Duration) *Daemon {
	return &Daemon{
		runner:   runner,
		interval: interval,
	}
}

// Start runs an immediate sync and then one per interval. It blocks until
// Stop is called or ctx is done.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return nil // Already running
	}
	d.running = true
	d.stopCh = make(chan struct{})
	d.mu.Unlock()

	d.runOnce(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.stopCh:
			return nil
		case <-ticker.C:
			d.runOnce(ctx)
		}
	}
}

// Stop shuts the daemon down and waits for an in-flight run to finish.
func (d *Daemon) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	close(d.stopCh)
	d.mu.Unlock()

	d.wg.Wait()
}

// SetInterval applies a new cadence on the next Start. Called when the
// config file changes between runs.
func (d *Daemon) SetInterval(interval time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.interval = interval
}

func (d *Daemon) runOnce(ctx context.Context) {
	d.wg.Add(1)
	defer d.wg.Done()

	if _, err := d.runner.Run(ctx); err != nil {
		if errors.Is(err, domain.ErrSyncInProgress) {
			logger.Warn("Previous run still active, skipping this tick")
			return
		}
		logger.Error("Scheduled run failed: %v", err)
	}
}
