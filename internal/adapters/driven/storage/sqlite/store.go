package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/coveline/crmdex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driven"
)

var _ driven.SyncRunStore = (*Store)(nil)

// Store is the SQLite-backed sync run journal.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates the journal at the specified data directory.
// If dataDir is empty, defaults to ~/.crmdex/data/journal.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".crmdex", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "journal.db")

	// WAL mode for better concurrency
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

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
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
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores a finished sync run.
func (s *Store) Save(ctx context.Context, run domain.SyncRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	countsJSON, err := json.Marshal(run.TypeCounts)
	if err != nil {
		return fmt.Errorf("marshalling type counts: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sync_runs (id, started_at, finished_at, items_upserted, items_dropped, error_count, type_counts)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			items_upserted = excluded.items_upserted,
			items_dropped = excluded.items_dropped,
			error_count = excluded.error_count,
			type_counts = excluded.type_counts
	`, run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.ItemsUpserted, run.ItemsDropped, run.ErrorCount, string(countsJSON))

	if err != nil {
		return fmt.Errorf("saving sync run: %w", err)
	}
	return nil
}

// Latest retrieves the most recent run.
func (s *Store) Latest(ctx context.Context) (*domain.SyncRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, items_upserted, items_dropped, error_count, type_counts
		FROM sync_runs ORDER BY started_at DESC LIMIT 1
	`)

	run, err := scanRun(row.Scan)
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, items_upserted, items_dropped, error_count, type_counts
		FROM sync_runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows.Scan)
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

// scanRun fills a run from one row. scan is either sql.Row.Scan or
// sql.Rows.Scan.
func scanRun(scan func(...any) error) (*domain.SyncRun, error) {
	var run domain.SyncRun
	var countsJSON string

	if err := scan(&run.ID, &run.StartedAt, &run.FinishedAt,
		&run.ItemsUpserted, &run.ItemsDropped, &run.ErrorCount, &countsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning sync run: %w", err)
	}

	if countsJSON != "" {
		if err := json.Unmarshal([]byte(countsJSON), &run.TypeCounts); err != nil {
			return nil, fmt.Errorf("unmarshaling type counts: %w", err)
		}
	}
	return &run, nil
}
