// Package places provides the place-data provider adapter: a text-search
// client against a Google-Places-style JSON API, authenticated with a
// static API key header.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openeats/dinesync/internal/cache"
	"github.com/openeats/dinesync/internal/core/domain"
	"github.com/openeats/dinesync/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.PlaceProvider = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://places.googleapis.com"
	DefaultTimeout = 30 * time.Second

	// fieldMask names the listing fields the engine consumes; asking for
	// less keeps the per-call cost down.
	fieldMask = "places.id,places.displayName,places.formattedAddress," +
		"places.location,places.rating,places.userRatingCount," +
		"places.priceLevel,places.types,places.photos," +
		"places.nationalPhoneNumber,places.websiteUri," +
		"places.regularOpeningHours.weekdayDescriptions"
)

// Config holds configuration for the places client.
type Config struct {
	// BaseURL is the provider API base URL (default: the Google Places
	// endpoint).
	BaseURL string

	// APIKey authenticates every request. Required.
	APIKey string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// Cache, when set, memoises search responses by query text so a tight
	// daemon cadence does not burn provider quota. Owned by the caller.
	Cache *cache.TTL
}

// Client issues text-search requests against the place provider.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	cache   *cache.TTL
}

// searchRequest is the provider's text-search request format.
type searchRequest struct {
	TextQuery    string        `json:"textQuery"`
	MaxResults   int           `json:"maxResultCount,omitempty"`
	LocationBias *locationBias `json:"locationBias,omitempty"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center domain.LatLng `json:"center"`
	Radius float64       `json:"radius"`
}

// searchResponse is the provider's text-search response format.
type searchResponse struct {
	Places []rawPlace `json:"places"`
}

// rawPlace is the wire shape of one listing; localised strings arrive as
// {"text": ...} objects and photos as a list of named references.
type rawPlace struct {
	ID               string         `json:"id"`
	DisplayName      localisedText  `json:"displayName"`
	FormattedAddress string         `json:"formattedAddress"`
	Location         *domain.LatLng `json:"location"`
	Rating           float64        `json:"rating"`
	UserRatingCount  int            `json:"userRatingCount"`
	PriceLevel       string         `json:"priceLevel"`
	Types            []string       `json:"types"`
	Photos           []photoRef     `json:"photos"`
	NationalPhone    string         `json:"nationalPhoneNumber"`
	WebsiteURI       string         `json:"websiteUri"`
	RegularHours     *openingHours  `json:"regularOpeningHours"`
}

type localisedText struct {
	Text string `json:"text"`
}

type photoRef struct {
	Name string `json:"name"`
}

type openingHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

// NewClient creates a places client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: places API key", domain.ErrMissingConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		cache:   cfg.Cache,
	}, nil
}

// TextSearch runs one search query and returns the provider-shaped
// listings. Responses are served from the cache when one is configured.
func (c *Client) TextSearch(ctx context.Context, query driven.PlaceQuery) ([]domain.RawListing, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(query.Text); ok {
			if listings, ok := cached.([]domain.RawListing); ok {
				return listings, nil
			}
		}
	}

	reqBody := searchRequest{
		TextQuery:  query.Text,
		MaxResults: query.MaxResults,
	}
	if query.RadiusMeters > 0 {
		reqBody.LocationBias = &locationBias{
			Circle: circle{
				Center: domain.LatLng{
					Latitude:  query.Center.Latitude,
					Longitude: query.Center.Longitude,
				},
				Radius: query.RadiusMeters,
			},
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/places:searchText",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("places error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("places error (status %d): %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	listings := make([]domain.RawListing, 0, len(searchResp.Places))
	for _, p := range searchResp.Places {
		listings = append(listings, toRawListing(p))
	}

	if c.cache != nil {
		c.cache.Set(query.Text, listings)
	}
	return listings, nil
}

// Close releases resources.
func (c *Client) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// toRawListing flattens the wire shape into the domain's raw listing.
func toRawListing(p rawPlace) domain.RawListing {
	raw := domain.RawListing{
		ID:                  p.ID,
		DisplayName:         p.DisplayName.Text,
		FormattedAddress:    p.FormattedAddress,
		Location:            p.Location,
		Rating:              p.Rating,
		UserRatingCount:     p.UserRatingCount,
		PriceLevel:          p.PriceLevel,
		Types:               p.Types,
		NationalPhoneNumber: p.NationalPhone,
		WebsiteURI:          p.WebsiteURI,
	}
	if len(p.Photos) > 0 {
		raw.PhotoName = p.Photos[0].Name
	}
	if p.RegularHours != nil {
		raw.WeekdayDescriptions = p.RegularHours.WeekdayDescriptions
	}
	return raw
}
