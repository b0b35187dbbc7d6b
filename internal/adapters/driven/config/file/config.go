// Package file loads sync settings from a TOML file. Credentials never
// live here; they come from the environment so the config file can be
// checked in.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/openeats/dinesync/internal/core/domain"
)

// fileConfig is the TOML shape of the settings file. Absent fields keep
// the engine defaults.
type fileConfig struct {
	Sync struct {
		BatchSize       int      `toml:"batch_size"`
		ItemDelayMS     int      `toml:"item_delay_ms"`
		BatchDelayMS    int      `toml:"batch_delay_ms"`
		MaxResults      int      `toml:"max_results"`
		Cuisines        []string `toml:"cuisines"`
		IntervalMinutes int      `toml:"interval_minutes"`
		HistoryKeep     int      `toml:"history_keep"`
	} `toml:"sync"`

	Reference struct {
		Latitude     float64 `toml:"latitude"`
		Longitude    float64 `toml:"longitude"`
		RadiusMeters float64 `toml:"radius_meters"`
		Municipality string  `toml:"municipality"`
	} `toml:"reference"`
}

// DefaultPath returns the default config file location,
// ~/.dinesync/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dinesync", "config.toml"), nil
}

// Load reads settings from path, layering the file's values over the
// engine defaults. A missing file yields the defaults unchanged.
func Load(path string) (domain.SyncSettings, error) {
	settings := domain.DefaultSyncSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("reading config: %w", err)
	}

	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return settings, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Sync.BatchSize > 0 {
		settings.BatchSize = cfg.Sync.BatchSize
	}
	if cfg.Sync.ItemDelayMS > 0 {
		settings.ItemDelay = time.Duration(cfg.Sync.ItemDelayMS) * time.Millisecond
	}
	if cfg.Sync.BatchDelayMS > 0 {
		settings.BatchDelay = time.Duration(cfg.Sync.BatchDelayMS) * time.Millisecond
	}
	if cfg.Sync.MaxResults > 0 {
		settings.MaxResults = cfg.Sync.MaxResults
	}
	if len(cfg.Sync.Cuisines) > 0 {
		settings.Cuisines = cfg.Sync.Cuisines
	}
	if cfg.Sync.IntervalMinutes > 0 {
		settings.Interval = time.Duration(cfg.Sync.IntervalMinutes) * time.Minute
	}
	if cfg.Sync.HistoryKeep > 0 {
		settings.HistoryKeep = cfg.Sync.HistoryKeep
	}
	if cfg.Reference.Latitude != 0 || cfg.Reference.Longitude != 0 {
		settings.Reference = domain.Coordinates{
			Latitude:  cfg.Reference.Latitude,
			Longitude: cfg.Reference.Longitude,
		}
	}
	if cfg.Reference.RadiusMeters > 0 {
		settings.RadiusMeters = cfg.Reference.RadiusMeters
	}
	if cfg.Reference.Municipality != "" {
		settings.Municipality = cfg.Reference.Municipality
	}

	return settings, nil
}
