package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/openeats/dinesync/internal/core/ports/driven"
)

// Ensure implementations satisfy the port.
var (
	_ driven.Pacer = (*DelayPacer)(nil)
	_ driven.Pacer = NopPacer{}
)

// DelayPacer spaces record processing with a token bucket and separates
// batches with a timed wait. One token refills per item delay, so bursts
// never exceed a single request beyond the steady rate.
type DelayPacer struct {
	bucket     *rate.Limiter
	batchDelay time.Duration
}

// NewDelayPacer builds a pacer from the configured inter-item and
// inter-batch delays. A zero item delay disables the bucket.
func NewDelayPacer(itemDelay, batchDelay time.Duration) *DelayPacer {
	limit := rate.Inf
	if itemDelay > 0 {
		limit = rate.Every(itemDelay)
	}
	return &DelayPacer{
		bucket:     rate.NewLimiter(limit, 1),
		batchDelay: batchDelay,
	}
}

// WaitItem blocks until the bucket allows the next record.
func (p *DelayPacer) WaitItem(ctx context.Context) error {
	return p.bucket.Wait(ctx)
}

// WaitBatch blocks for the inter-batch delay or until ctx is done.
func (p *DelayPacer) WaitBatch(ctx context.Context) error {
	if p.batchDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.batchDelay):
		return nil
	}
}

// NopPacer never waits. Used in tests and for dry runs against fixtures.
type NopPacer struct{}

func (NopPacer) WaitItem(context.Context) error  { return nil }
func (NopPacer) WaitBatch(context.Context) error { return nil }
