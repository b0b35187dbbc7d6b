// Package sqlite keeps local run history in a SQLite database so the
// history command and the daemon survive process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/openeats/dinesync/internal/adapters/driven/history/sqlite/migrations"
	"github.com/openeats/dinesync/internal/core/domain"
	"github.com/openeats/dinesync/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RunHistoryStore = (*Store)(nil)

// Store is a SQLite-backed run-history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a history store at the specified data directory.
// If dataDir is empty, defaults to ~/.dinesync/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".dinesync", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record persists one run.
func (s *Store) Record(ctx context.Context, run domain.SyncRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, started_at, ended_at, duration_seconds,
			created, updated, unchanged, errors, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.EndedAt.UTC().Format(time.RFC3339),
		run.DurationSeconds,
		run.Results.Created, run.Results.Updated,
		run.Results.Unchanged, run.Results.Errors,
		boolToInt(run.Success),
		nullString(run.Error))

	if err != nil {
		return fmt.Errorf("recording sync run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, ended_at, duration_seconds,
			created, updated, unchanged, errors, success, error
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync runs: %w", err)
	}

	return runs, nil
}

// Prune keeps only the most recent 'keep' runs.
func (s *Store) Prune(ctx context.Context, keep int) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM sync_runs
		WHERE id NOT IN (
			SELECT id FROM sync_runs ORDER BY started_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning sync runs: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// scanRun scans a sync run from *sql.Rows.
func scanRun(rows *sql.Rows) (*domain.SyncRun, error) {
	var run domain.SyncRun
	var startedAt, endedAt string
	var success int
	var errMsg sql.NullString

	if err := rows.Scan(&run.ID, &startedAt, &endedAt, &run.DurationSeconds,
		&run.Results.Created, &run.Results.Updated,
		&run.Results.Unchanged, &run.Results.Errors,
		&success, &errMsg); err != nil {
		return nil, fmt.Errorf("scanning sync run: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		run.StartedAt = t
	}
	if t, err := time.Parse(time.RFC3339, endedAt); err == nil {
		run.EndedAt = t
	}
	run.Success = success == 1
	if errMsg.Valid {
		run.Error = errMsg.String
	}

	return &run, nil
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
