package domain

import "time"

// SyncSummary accumulates the outcome of one reconciliation run.
type SyncSummary struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Errors    int `json:"errors"`
}

// Total returns the number of records the run accounted for.
func (s SyncSummary) Total() int {
	return s.Created + s.Updated + s.Unchanged + s.Errors
}

// SyncPhase names the stage a run is in.
type SyncPhase string

// Run phases, in order. A run either reaches PhaseCompleted (possibly with
// per-record errors) or aborts on a fatal setup failure before the first
// batch.
const (
	PhaseNotStarted       SyncPhase = "not_started"
	PhaseFetchingExisting SyncPhase = "fetching_existing"
	PhaseFetchingIncoming SyncPhase = "fetching_incoming"
	PhaseReconciling      SyncPhase = "reconciling"
	PhaseCompleted        SyncPhase = "completed"
)

// SyncRun is the durable record of one run: what the log sink receives and
// what the history store keeps.
type SyncRun struct {
	// ID is a generated identifier for the run.
	ID string `json:"id"`

	// StartedAt and EndedAt bound the run.
	StartedAt time.Time `json:"timestamp"`
	EndedAt   time.Time `json:"-"`

	// DurationSeconds is EndedAt - StartedAt.
	DurationSeconds float64 `json:"duration_seconds"`

	// Results holds the final counts.
	Results SyncSummary `json:"results"`

	// Success is false only when the run aborted on a fatal error.
	Success bool `json:"success"`

	// Error carries the fatal error message when Success is false.
	Error string `json:"error,omitempty"`
}
