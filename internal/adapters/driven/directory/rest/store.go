// Package rest implements the directory store boundary over a JSON REST
// API: GET /restaurants for the snapshot, POST /restaurants to create,
// PATCH /restaurants/{id} to update, authenticated with a service key
// header. It also provides the sync-log sink on the same API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openeats/dinesync/internal/core/domain"
	"github.com/openeats/dinesync/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.DirectoryStore = (*Store)(nil)
	_ driven.SyncLogSink    = (*Store)(nil)
)

// DefaultTimeout bounds each store call.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the REST directory store.
type Config struct {
	// BaseURL is the directory API root. Required.
	BaseURL string

	// ServiceKey authenticates every request. Required.
	ServiceKey string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Store talks to the restaurant directory's REST API.
type Store struct {
	client     *http.Client
	baseURL    string
	serviceKey string
}

// recordPayload is the wire shape of a directory record.
type recordPayload struct {
	ID            string   `json:"id,omitempty"`
	ExternalID    string   `json:"external_id,omitempty"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Neighborhood  string   `json:"neighborhood,omitempty"`
	Cuisine       []string `json:"cuisine"`
	PriceTier     int      `json:"price_tier"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Website       string   `json:"website,omitempty"`
	HoursText     string   `json:"hours_text,omitempty"`
	PhotoRef      string   `json:"photo_ref,omitempty"`
	DistanceMiles float64  `json:"distance_miles"`
	LastSyncedAt  string   `json:"last_synced_at,omitempty"`
}

// NewStore creates a REST directory store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: directory API URL", domain.ErrMissingConfig)
	}
	if cfg.ServiceKey == "" {
		return nil, fmt.Errorf("%w: directory service key", domain.ErrMissingConfig)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
	}, nil
}

// List returns the full directory snapshot.
func (s *Store) List(ctx context.Context) ([]domain.DirectoryRecord, error) {
	body, err := s.do(ctx, http.MethodGet, "/restaurants", nil)
	if err != nil {
		return nil, err
	}

	var payloads []recordPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	records := make([]domain.DirectoryRecord, 0, len(payloads))
	for _, p := range payloads {
		records = append(records, toRecord(p))
	}
	return records, nil
}

// Create inserts a new record built from the canonical restaurant.
func (s *Store) Create(ctx context.Context, r domain.Restaurant) error {
	_, err := s.do(ctx, http.MethodPost, "/restaurants", toPayload(r))
	return err
}

// Update patches the record identified by id with the canonical field set.
func (s *Store) Update(ctx context.Context, id string, r domain.Restaurant) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.do(ctx, http.MethodPatch, "/restaurants/"+url.PathEscape(id), toPayload(r))
	return err
}

// Record appends one structured sync-log entry. Callers treat a failure
// here as non-fatal.
func (s *Store) Record(ctx context.Context, run domain.SyncRun) error {
	_, err := s.do(ctx, http.MethodPost, "/sync_logs", run)
	return err
}

// do issues one authenticated request and returns the response body.
// Non-2xx responses become an error naming status and body.
func (s *Store) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Service-Key", s.serviceKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if readErr != nil {
			return nil, fmt.Errorf("directory error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("directory error (status %d): %s", resp.StatusCode, string(body))
	}
	if readErr != nil {
		return nil, fmt.Errorf("read response: %w", readErr)
	}
	return body, nil
}

func toPayload(r domain.Restaurant) recordPayload {
	p := recordPayload{
		ExternalID:    r.ExternalID,
		Name:          r.Name,
		Address:       r.Address,
		Neighborhood:  r.Neighborhood,
		Cuisine:       r.Cuisine,
		PriceTier:     r.PriceTier,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		Phone:         r.Phone,
		Website:       r.Website,
		HoursText:     r.HoursText,
		PhotoRef:      r.PhotoRef,
		DistanceMiles: r.DistanceMiles,
		LastSyncedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if r.Coordinates != nil {
		p.Latitude = &r.Coordinates.Latitude
		p.Longitude = &r.Coordinates.Longitude
	}
	return p
}

func toRecord(p recordPayload) domain.DirectoryRecord {
	rec := domain.DirectoryRecord{
		ID:            p.ID,
		ExternalID:    p.ExternalID,
		Name:          p.Name,
		Address:       p.Address,
		Neighborhood:  p.Neighborhood,
		Cuisine:       p.Cuisine,
		PriceTier:     p.PriceTier,
		Rating:        p.Rating,
		ReviewCount:   p.ReviewCount,
		Phone:         p.Phone,
		Website:       p.Website,
		HoursText:     p.HoursText,
		PhotoRef:      p.PhotoRef,
		DistanceMiles: p.DistanceMiles,
	}
	if p.Latitude != nil && p.Longitude != nil {
		rec.Coordinates = &domain.Coordinates{
			Latitude:  *p.Latitude,
			Longitude: *p.Longitude,
		}
	}
	if p.LastSyncedAt != "" {
		if t, err := time.Parse(time.RFC3339, p.LastSyncedAt); err == nil {
			rec.LastSyncedAt = t
		}
	}
	return rec
}
