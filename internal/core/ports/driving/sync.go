// Package driving defines the inbound ports of the sync engine: what the
// CLI and the daemon call.
package driving

import (
	"context"

	"github.com/openeats/dinesync/internal/core/domain"
)

// SyncStatus is a point-in-time view of an active run.
type SyncStatus struct {
	// Phase is the run's current stage.
	Phase domain.SyncPhase

	// Batch and BatchCount locate the run within reconciliation
	// (batch i of n); both zero outside PhaseReconciling.
	Batch      int
	BatchCount int

	// Processed counts records handled so far; Errors counts isolated
	// per-record failures.
	Processed int
	Errors    int
}

// SyncRunner drives one reconciliation run.
type SyncRunner interface {
	// Run executes a full run and returns its summary. A fatal setup
	// failure returns an error and no summary; per-record failures are
	// absorbed into the summary's error count.
	Run(ctx context.Context) (*domain.SyncSummary, error)

	// Status reports progress of the active run, or the last known phase
	// when idle.
	Status() SyncStatus
}
