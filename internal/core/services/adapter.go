package services

import (
	"strings"

	"github.com/openeats/dinesync/internal/core/domain"
)

// cuisineByTag maps provider category tags to directory cuisine labels.
// Scanned in the listing's tag order, so the provider's primary type wins.
var cuisineByTag = map[string]string{
	"mexican_restaurant":       "Mexican",
	"tex_mex_restaurant":       "Tex-Mex",
	"barbecue_restaurant":      "BBQ",
	"italian_restaurant":       "Italian",
	"pizza_restaurant":         "Pizza",
	"seafood_restaurant":       "Seafood",
	"steak_house":              "Steakhouse",
	"sushi_restaurant":         "Sushi",
	"japanese_restaurant":      "Japanese",
	"chinese_restaurant":       "Chinese",
	"thai_restaurant":          "Thai",
	"vietnamese_restaurant":    "Vietnamese",
	"korean_restaurant":        "Korean",
	"indian_restaurant":        "Indian",
	"french_restaurant":        "French",
	"greek_restaurant":         "Greek",
	"mediterranean_restaurant": "Mediterranean",
	"american_restaurant":      "American",
	"hamburger_restaurant":     "Burgers",
	"sandwich_shop":            "Sandwiches",
	"breakfast_restaurant":     "Breakfast",
	"brunch_restaurant":        "Brunch",
	"vegetarian_restaurant":    "Vegetarian",
	"bakery":                   "Bakery",
	"cafe":                     "Cafe",
	"coffee_shop":              "Cafe",
	"bar_and_grill":            "Bar & Grill",
}

// cuisineByKeyword is the substring fallback over the concatenated tags
// when no tag matches exactly.
var cuisineByKeyword = []struct {
	keyword string
	label   string
}{
	{"pizza", "Pizza"},
	{"bbq", "BBQ"},
	{"barbecue", "BBQ"},
	{"burger", "Burgers"},
	{"seafood", "Seafood"},
	{"steak", "Steakhouse"},
	{"taco", "Mexican"},
	{"coffee", "Cafe"},
}

// neighborhoods is the gazetteer scanned against the formatted address.
// First match wins.
var neighborhoods = []string{
	"Alamo Heights",
	"Stone Oak",
	"King William",
	"Southtown",
	"Monte Vista",
	"Olmos Park",
	"Terrell Hills",
	"Castle Hills",
	"Leon Valley",
	"Tobin Hill",
	"Dignowity Hill",
	"Government Hill",
	"Lavaca",
	"Mahncke Park",
	"Beacon Hill",
	"The Pearl",
	"La Villita",
	"Medical Center",
	"Downtown",
}

// neighborhoodByRoad maps major-road keywords to the neighborhood a listing
// on that road most plausibly belongs to.
var neighborhoodByRoad = []struct {
	keyword      string
	neighborhood string
}{
	{"broadway", "Alamo Heights"},
	{"pearl pkwy", "The Pearl"},
	{"s alamo", "Southtown"},
	{"s st mary", "Southtown"},
	{"n st mary", "Tobin Hill"},
	{"san pedro ave", "Monte Vista"},
	{"e houston", "Downtown"},
	{"w commerce", "Downtown"},
	{"stone oak pkwy", "Stone Oak"},
	{"medical dr", "Medical Center"},
}

// priceTierByLevel maps the provider's four-level price enum to tiers.
var priceTierByLevel = map[string]int{
	"PRICE_LEVEL_INEXPENSIVE":    domain.TierInexpensive,
	"PRICE_LEVEL_MODERATE":       domain.TierModerate,
	"PRICE_LEVEL_EXPENSIVE":      domain.TierExpensive,
	"PRICE_LEVEL_VERY_EXPENSIVE": domain.TierVeryExpensive,
}

// Adapt converts a provider-shaped listing into the canonical restaurant
// record. It never fails: every missing field degrades to its documented
// default. The only input beyond the listing is the reference point for
// distance and the municipality for the neighborhood fallback.
func Adapt(raw domain.RawListing, ref domain.Coordinates, municipality string) domain.Restaurant {
	r := domain.Restaurant{
		ExternalID:   raw.ID,
		Name:         strings.TrimSpace(raw.DisplayName),
		Address:      strings.TrimSpace(raw.FormattedAddress),
		Neighborhood: deriveNeighborhood(raw.FormattedAddress, municipality),
		Cuisine:      deriveCuisine(raw.Types),
		PriceTier:    derivePriceTier(raw.PriceLevel),
		Rating:       raw.Rating,
		ReviewCount:  raw.UserRatingCount,
		Phone:        raw.NationalPhoneNumber,
		Website:      raw.WebsiteURI,
		HoursText:    deriveHours(raw.WeekdayDescriptions),
		PhotoRef:     raw.PhotoName,
	}

	if raw.Rating < 0 {
		r.Rating = 0
	}
	if raw.UserRatingCount < 0 {
		r.ReviewCount = 0
	}

	if raw.Location != nil {
		r.Coordinates = &domain.Coordinates{
			Latitude:  raw.Location.Latitude,
			Longitude: raw.Location.Longitude,
		}
		r.DistanceMiles = DistanceMiles(*r.Coordinates, ref)
	}

	return r
}

// deriveCuisine scans tags against the tag table, then falls back to
// keyword substring checks, then to the sentinel category.
func deriveCuisine(tags []string) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, tag := range tags {
		label, ok := cuisineByTag[strings.ToLower(tag)]
		if ok && !seen[label] {
			labels = append(labels, label)
			seen[label] = true
		}
	}
	if len(labels) > 0 {
		return labels
	}

	joined := strings.ToLower(strings.Join(tags, " "))
	for _, kw := range cuisineByKeyword {
		if strings.Contains(joined, kw.keyword) {
			return []string{kw.label}
		}
	}

	return []string{domain.DefaultCuisine}
}

// deriveNeighborhood matches the address against the gazetteer, then the
// major-road table; first match wins, default is the municipality.
func deriveNeighborhood(address, municipality string) string {
	lower := strings.ToLower(address)
	for _, n := range neighborhoods {
		if strings.Contains(lower, strings.ToLower(n)) {
			return n
		}
	}
	for _, road := range neighborhoodByRoad {
		if strings.Contains(lower, road.keyword) {
			return road.neighborhood
		}
	}
	return municipality
}

func derivePriceTier(level string) int {
	if tier, ok := priceTierByLevel[level]; ok {
		return tier
	}
	return domain.TierModerate
}

func deriveHours(weekday []string) string {
	if len(weekday) == 0 {
		return domain.DefaultHoursText
	}
	return strings.Join(weekday, "\n")
}
