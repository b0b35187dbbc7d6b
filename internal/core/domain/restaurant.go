package domain

import "time"

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Price tier bounds. Tiers map the provider's four-level price enum to
// small integers; TierModerate is the default when the provider gives no
// signal.
const (
	TierInexpensive   = 1
	TierModerate      = 2
	TierExpensive     = 3
	TierVeryExpensive = 4
)

// DefaultCuisine is the sentinel category used when no tag or keyword
// matches. Cuisine lists are never empty.
const DefaultCuisine = "Restaurant"

// DefaultHoursText is used when the provider returns no opening hours.
const DefaultHoursText = "Hours not available"

// Restaurant is the canonical record the engine reconciles: the adapter's
// output, independent of provider shape.
type Restaurant struct {
	// ExternalID is the provider's stable identifier. Empty for listings
	// from legacy sources.
	ExternalID string

	// Name and Address feed fuzzy identity resolution.
	Name    string
	Address string

	// Neighborhood is derived from the address; defaults to the
	// municipality name.
	Neighborhood string

	// Cuisine is an ordered list of category labels; the first element is
	// the primary cuisine. Never empty.
	Cuisine []string

	// PriceTier is 1-4; defaults to TierModerate.
	PriceTier int

	// Rating is 0-5; ReviewCount is non-negative.
	Rating      float64
	ReviewCount int

	// Coordinates may be nil when the provider returned no location.
	Coordinates *Coordinates

	Phone     string
	Website   string
	HoursText string
	PhotoRef  string

	// DistanceMiles is the great-circle distance from the reference point,
	// rounded to one decimal. Zero when Coordinates is nil.
	DistanceMiles float64
}

// PrimaryCuisine returns the first cuisine label.
func (r *Restaurant) PrimaryCuisine() string {
	if len(r.Cuisine) == 0 {
		return DefaultCuisine
	}
	return r.Cuisine[0]
}

// DirectoryRecord is the store's view of a restaurant: the canonical field
// set plus the store-assigned identity and sync timestamp. The engine never
// mutates one directly; it only requests create or update.
type DirectoryRecord struct {
	// ID is the store-assigned identity.
	ID string

	ExternalID   string
	Name         string
	Address      string
	Neighborhood string
	Cuisine      []string
	PriceTier    int
	Rating       float64
	ReviewCount  int
	Coordinates  *Coordinates
	Phone        string
	Website      string
	HoursText    string
	PhotoRef     string

	DistanceMiles float64

	// LastSyncedAt is set by the store on each write.
	LastSyncedAt time.Time
}
