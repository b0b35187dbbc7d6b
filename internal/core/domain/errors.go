package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingConfig indicates a required credential or URL is absent.
	// Startup aborts before any work begins.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrDirectoryUnavailable indicates the directory store could not be
	// reached for the initial snapshot. Fatal for the run.
	ErrDirectoryUnavailable = errors.New("directory store unavailable")

	// ErrProviderUnavailable indicates the place provider could not be
	// reached for the initial unfiltered query. Fatal for the run.
	ErrProviderUnavailable = errors.New("place provider unavailable")

	// ErrSyncInProgress indicates a run is already active on this runner.
	ErrSyncInProgress = errors.New("sync in progress")
)
