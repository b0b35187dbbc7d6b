package domain

// LatLng is a provider-shaped coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RawListing is the provider-shaped payload returned by a place search.
// It is ephemeral: the adapter converts it to a Restaurant and the raw
// form is discarded.
type RawListing struct {
	// ID is the provider's stable place identifier. May be empty for
	// legacy sources.
	ID string `json:"id"`

	// DisplayName is the listing's display name.
	DisplayName string `json:"displayName"`

	// FormattedAddress is the full formatted street address.
	FormattedAddress string `json:"formattedAddress"`

	// Location is the listing's coordinates, if the provider returned any.
	Location *LatLng `json:"location,omitempty"`

	// Rating is the provider's aggregate rating, 0-5.
	Rating float64 `json:"rating"`

	// UserRatingCount is the number of ratings behind Rating.
	UserRatingCount int `json:"userRatingCount"`

	// PriceLevel is the provider's four-level price enum
	// (PRICE_LEVEL_INEXPENSIVE .. PRICE_LEVEL_VERY_EXPENSIVE).
	PriceLevel string `json:"priceLevel"`

	// Types are the provider's category tags (e.g. "mexican_restaurant").
	Types []string `json:"types"`

	// PhotoName is an opaque photo reference.
	PhotoName string `json:"photoName"`

	// NationalPhoneNumber is the listing's phone number.
	NationalPhoneNumber string `json:"nationalPhoneNumber"`

	// WebsiteURI is the listing's website.
	WebsiteURI string `json:"websiteUri"`

	// WeekdayDescriptions are human-readable opening-hours lines.
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}
