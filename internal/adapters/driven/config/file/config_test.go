package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openeats/dinesync/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSyncSettings(), settings)
}

func TestLoad_OverridesLayerOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[sync]
batch_size = 10
item_delay_ms = 100
batch_delay_ms = 500
max_results = 15
cuisines = ["ramen", "tex-mex"]
interval_minutes = 30
history_keep = 50

[reference]
latitude = 30.2672
longitude = -97.7431
radius_meters = 40000
municipality = "Austin"
`)

	settings, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 10, settings.BatchSize)
	assert.Equal(t, 100*time.Millisecond, settings.ItemDelay)
	assert.Equal(t, 500*time.Millisecond, settings.BatchDelay)
	assert.Equal(t, 15, settings.MaxResults)
	assert.Equal(t, []string{"ramen", "tex-mex"}, settings.Cuisines)
	assert.Equal(t, 30*time.Minute, settings.Interval)
	assert.Equal(t, 50, settings.HistoryKeep)
	assert.Equal(t, domain.Coordinates{Latitude: 30.2672, Longitude: -97.7431}, settings.Reference)
	assert.Equal(t, 40000.0, settings.RadiusMeters)
	assert.Equal(t, "Austin", settings.Municipality)
}

func TestLoad_PartialFileKeepsRemainingDefaults(t *testing.T) {
	path := writeConfig(t, `
[sync]
batch_size = 3
`)

	settings, err := Load(path)

	require.NoError(t, err)
	defaults := domain.DefaultSyncSettings()
	assert.Equal(t, 3, settings.BatchSize)
	assert.Equal(t, defaults.ItemDelay, settings.ItemDelay)
	assert.Equal(t, defaults.Cuisines, settings.Cuisines)
	assert.Equal(t, defaults.Reference, settings.Reference)
	assert.Equal(t, defaults.Municipality, settings.Municipality)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `[sync`)

	_, err := Load(path)

	assert.Error(t, err)
}
