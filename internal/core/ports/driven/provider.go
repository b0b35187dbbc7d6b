package driven

import (
	"context"

	"github.com/openeats/dinesync/internal/core/domain"
)

// PlaceQuery describes one text-search request against the place provider.
type PlaceQuery struct {
	// Text is the search text, e.g. "restaurants" or "bbq restaurants".
	Text string

	// Center and RadiusMeters bias results around the reference point.
	Center       domain.Coordinates
	RadiusMeters float64

	// MaxResults caps the response size. The provider itself caps a single
	// call at 20 results.
	MaxResults int
}

// PlaceProvider fetches raw listings from the external place-data provider.
type PlaceProvider interface {
	// TextSearch runs one paginated-style search query and returns the
	// provider-shaped listings. A non-success response is returned as an
	// error naming the status.
	TextSearch(ctx context.Context, query PlaceQuery) ([]domain.RawListing, error)

	// Close releases resources.
	Close() error
}
