package domain

import (
	"fmt"
	"time"
)

// SyncSettings are the tunables of one reconciliation run.
type SyncSettings struct {
	// BatchSize bounds how many records are processed between inter-batch
	// delays.
	BatchSize int

	// ItemDelay is the pause between records, BatchDelay between batches.
	// Both exist as backpressure against the provider's rate limit, not as
	// a retry mechanism.
	ItemDelay  time.Duration
	BatchDelay time.Duration

	// MaxResults caps each provider query. The provider's search endpoint
	// returns at most 20 per call.
	MaxResults int

	// RadiusMeters biases provider queries around the reference point.
	RadiusMeters float64

	// Cuisines are the category keywords queried individually to widen
	// recall beyond the single unfiltered query.
	Cuisines []string

	// Reference is the fixed point distances are computed from.
	Reference Coordinates

	// Municipality is the neighborhood fallback label.
	Municipality string

	// Interval is the daemon cadence between runs.
	Interval time.Duration

	// HistoryKeep is how many run records the history store retains.
	HistoryKeep int
}

// DefaultSyncSettings returns the San Antonio directory defaults.
func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		BatchSize:    5,
		ItemDelay:    250 * time.Millisecond,
		BatchDelay:   2 * time.Second,
		MaxResults:   20,
		RadiusMeters: 25000,
		Cuisines: []string{
			"mexican", "bbq", "italian", "sushi", "seafood",
			"burgers", "pizza", "steakhouse", "thai", "breakfast",
		},
		Reference:    Coordinates{Latitude: 29.4241, Longitude: -98.4936},
		Municipality: "San Antonio",
		Interval:     6 * time.Hour,
		HistoryKeep:  100,
	}
}

// Validate checks the settings are usable for a run.
func (s SyncSettings) Validate() error {
	if s.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive", ErrInvalidInput)
	}
	if s.MaxResults <= 0 {
		return fmt.Errorf("%w: max results must be positive", ErrInvalidInput)
	}
	if s.ItemDelay < 0 || s.BatchDelay < 0 {
		return fmt.Errorf("%w: delays must not be negative", ErrInvalidInput)
	}
	if s.Municipality == "" {
		return fmt.Errorf("%w: municipality is required", ErrInvalidInput)
	}
	return nil
}
