package driven

import "context"

// Pacer spaces the engine's calls against the provider's rate limit.
// Making pacing a port keeps the reconciliation loop testable without real
// sleeps: tests inject a fake that only counts waits.
type Pacer interface {
	// WaitItem blocks until the next record may be processed.
	WaitItem(ctx context.Context) error

	// WaitBatch blocks between batches.
	WaitBatch(ctx context.Context) error
}
