package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSyncSettings(t *testing.T) {
	s := DefaultSyncSettings()

	assert.Equal(t, 5, s.BatchSize)
	assert.Equal(t, 250*time.Millisecond, s.ItemDelay)
	assert.Equal(t, 2*time.Second, s.BatchDelay)
	assert.Equal(t, 20, s.MaxResults)
	assert.Equal(t, 25000.0, s.RadiusMeters)
	assert.Len(t, s.Cuisines, 10)
	assert.Equal(t, Coordinates{Latitude: 29.4241, Longitude: -98.4936}, s.Reference)
	assert.Equal(t, "San Antonio", s.Municipality)
	assert.Equal(t, 6*time.Hour, s.Interval)
	assert.Equal(t, 100, s.HistoryKeep)

	assert.NoError(t, s.Validate())
}

func TestSyncSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SyncSettings)
		valid  bool
	}{
		{"defaults", func(s *SyncSettings) {}, true},
		{"zero batch size", func(s *SyncSettings) { s.BatchSize = 0 }, false},
		{"negative batch size", func(s *SyncSettings) { s.BatchSize = -1 }, false},
		{"zero max results", func(s *SyncSettings) { s.MaxResults = 0 }, false},
		{"negative item delay", func(s *SyncSettings) { s.ItemDelay = -time.Second }, false},
		{"negative batch delay", func(s *SyncSettings) { s.BatchDelay = -time.Second }, false},
		{"zero delays", func(s *SyncSettings) { s.ItemDelay = 0; s.BatchDelay = 0 }, true},
		{"empty municipality", func(s *SyncSettings) { s.Municipality = "" }, false},
		{"no cuisines", func(s *SyncSettings) { s.Cuisines = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSyncSettings()
			tt.mutate(&s)

			err := s.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}
