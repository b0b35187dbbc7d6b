// Package cli wires the engine's adapters together behind cobra commands.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	configfile "github.com/openeats/dinesync/internal/adapters/driven/config/file"
	"github.com/openeats/dinesync/internal/adapters/driven/directory/rest"
	historysqlite "github.com/openeats/dinesync/internal/adapters/driven/history/sqlite"
	"github.com/openeats/dinesync/internal/adapters/driven/places"
	"github.com/openeats/dinesync/internal/cache"
	"github.com/openeats/dinesync/internal/core/domain"
	"github.com/openeats/dinesync/internal/core/services"
	"github.com/openeats/dinesync/internal/logger"
)

const version = "0.3.0"

// Environment variables carrying the required credentials. All three must
// be present before any work begins.
const (
	envDirectoryURL = "DIRECTORY_API_URL"
	envServiceKey   = "DIRECTORY_SERVICE_KEY"
	envPlacesAPIKey = "PLACES_API_KEY"
)

var (
	verboseFlag bool
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "dinesync",
	Short: "Synchronise the restaurant directory with the place provider",
	Long: `dinesync reconciles the restaurant directory against an external
place-data provider: new listings are created, changed listings are
updated, and unchanged listings are skipped, in paced batches that
respect the provider's rate limit.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"config file path (default ~/.dinesync/config.toml)")
}

// Execute runs the CLI. .env is loaded best-effort so local setups can
// keep credentials out of the shell profile.
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}

// loadSettings reads the TOML config, falling back to defaults when no
// file exists.
func loadSettings() (domain.SyncSettings, string, error) {
	path := configFlag
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return domain.SyncSettings{}, "", fmt.Errorf("resolve config path: %w", err)
		}
	}
	settings, err := configfile.Load(path)
	if err != nil {
		return domain.SyncSettings{}, "", err
	}
	return settings, path, nil
}

// credentials validates and returns the three required externals.
func credentials() (directoryURL, serviceKey, placesKey string, err error) {
	directoryURL = os.Getenv(envDirectoryURL)
	serviceKey = os.Getenv(envServiceKey)
	placesKey = os.Getenv(envPlacesAPIKey)

	for _, missing := range []struct {
		name, value string
	}{
		{envDirectoryURL, directoryURL},
		{envServiceKey, serviceKey},
		{envPlacesAPIKey, placesKey},
	} {
		if missing.value == "" {
			return "", "", "", fmt.Errorf("%w: %s", domain.ErrMissingConfig, missing.name)
		}
	}
	return directoryURL, serviceKey, placesKey, nil
}

// buildRunner constructs a fully wired sync runner from the environment
// and settings. The returned cleanup closes the history store.
func buildRunner(settings domain.SyncSettings, withCache bool) (*services.SyncRunner, func(), error) {
	directoryURL, serviceKey, placesKey, err := credentials()
	if err != nil {
		return nil, nil, err
	}

	providerCfg := places.Config{APIKey: placesKey}
	if withCache {
		providerCfg.Cache = cache.New(10 * time.Minute)
	}
	provider, err := places.NewClient(providerCfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := rest.NewStore(rest.Config{
		BaseURL:    directoryURL,
		ServiceKey: serviceKey,
	})
	if err != nil {
		return nil, nil, err
	}

	history, err := historysqlite.NewStore("")
	if err != nil {
		return nil, nil, err
	}

	runner := services.NewSyncRunner(provider, store, store, history, nil, settings)
	cleanup := func() {
		provider.Close()
		history.Close()
	}
	return runner, cleanup, nil
}
