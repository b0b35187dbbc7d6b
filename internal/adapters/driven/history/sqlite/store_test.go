package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openeats/dinesync/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "dinesync-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testRun(id string, startedAt time.Time) domain.SyncRun {
	return domain.SyncRun{
		ID:              id,
		StartedAt:       startedAt,
		EndedAt:         startedAt.Add(90 * time.Second),
		DurationSeconds: 90,
		Results:         domain.SyncSummary{Created: 2, Updated: 1, Unchanged: 17},
		Success:         true,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, "history.db", filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "dinesync-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestRecordAndList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, testRun("run-1", started)))

	runs, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, started, got.StartedAt)
	assert.Equal(t, started.Add(90*time.Second), got.EndedAt)
	assert.Equal(t, 90.0, got.DurationSeconds)
	assert.Equal(t, 2, got.Results.Created)
	assert.Equal(t, 1, got.Results.Updated)
	assert.Equal(t, 17, got.Results.Unchanged)
	assert.True(t, got.Success)
	assert.Empty(t, got.Error)
}

func TestRecord_EmptyID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.Record(context.Background(), domain.SyncRun{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_FailedRun(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	run := testRun("run-bad", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	run.Success = false
	run.Error = "directory unavailable: service down"
	require.NoError(t, store.Record(ctx, run))

	runs, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Success)
	assert.Equal(t, "directory unavailable: service down", runs[0].Error)
}

func TestList_NewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := testRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, store.Record(ctx, run))
	}

	runs, err := store.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)
	assert.Equal(t, "run-2", runs[2].ID)
}

func TestPrune(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		run := testRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, store.Record(ctx, run))
	}

	require.NoError(t, store.Prune(ctx, 4))

	runs, err := store.List(ctx, 100)
	require.NoError(t, err)
	require.Len(t, runs, 4)
	// The newest four survive.
	assert.Equal(t, "run-9", runs[0].ID)
	assert.Equal(t, "run-6", runs[3].ID)
}
