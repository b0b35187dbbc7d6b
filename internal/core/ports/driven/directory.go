package driven

import (
	"context"

	"github.com/openeats/dinesync/internal/core/domain"
)

// DirectoryStore is the engine's boundary to the restaurant directory.
// The engine sends the canonical field set and interprets a non-success
// response as an error attributable to that single record.
type DirectoryStore interface {
	// List returns the full existing-directory snapshot.
	List(ctx context.Context) ([]domain.DirectoryRecord, error)

	// Create inserts a new record built from the canonical restaurant.
	Create(ctx context.Context, r domain.Restaurant) error

	// Update patches the record identified by the store-assigned id with
	// the canonical field set.
	Update(ctx context.Context, id string, r domain.Restaurant) error
}

// SyncLogSink receives one structured record per run. Failures to write are
// non-fatal; callers only warn.
type SyncLogSink interface {
	Record(ctx context.Context, run domain.SyncRun) error
}

// RunHistoryStore keeps local run records for the history command and the
// daemon's bookkeeping.
type RunHistoryStore interface {
	// Record persists one run.
	Record(ctx context.Context, run domain.SyncRun) error

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.SyncRun, error)

	// Prune keeps only the most recent 'keep' runs.
	Prune(ctx context.Context, keep int) error

	// Close releases the underlying storage.
	Close() error
}
