package postgres

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/coveline/crmdex/internal/adapters/driven/storage/postgres/migrations"
	"github.com/coveline/crmdex/internal/core/domain"
	"github.com/coveline/crmdex/internal/core/ports/driven"
)

// upsertColumns is the column count of one items row in an upsert.
const upsertColumns = 9

// Postgres error codes the store maps onto domain sentinels.
const (
	codeQueryCanceled = "57014"
	classSyntax       = "42"
	classConnection   = "08"
)

var _ driven.ItemStore = (*Store)(nil)

// Store is the Postgres-backed item index.
type Store struct {
	db *sql.DB
}

// Open connects to the database at connStr and applies pending
// migrations.
func Open(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	store, err := New(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing connection and applies pending migrations.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(migrations.FS); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
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
			"INSERT INTO schema_migrations (version) VALUES ($1)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// UpsertBatch writes the items in one multi-row statement, so a
// statement timeout fails the whole batch at once. Existing rows keep
// their created_at; everything else is overwritten.
func (s *Store) UpsertBatch(ctx context.Context, items []domain.IndexedItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	placeholders := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*upsertColumns)

	for i, item := range items {
		metadataJSON, err := json.Marshal(item.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata of %s/%s: %w", item.Type, item.ID, err)
		}

		base := i * upsertColumns
		marks := make([]string, upsertColumns)
		for j := range marks {
			marks[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(marks, ", ")+")")

		args = append(args,
			item.Type, item.ID, nullableString(item.ParentID),
			item.Title, item.Content, item.URL,
			string(metadataJSON), now, now,
		)
	}

	query := `
		INSERT INTO items (type, id, parent_id, title, content, url, metadata, created_at, updated_at)
		VALUES ` + strings.Join(placeholders, ", ") + `
		ON CONFLICT (type, id) DO UPDATE SET
			parent_id = EXCLUDED.parent_id,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			url = EXCLUDED.url,
			metadata = EXCLUDED.metadata,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting %d items: %w", len(items), mapError(err))
	}
	return nil
}

// Search runs a full-text query in the requested dialect and returns
// rank-ordered rows.
func (s *Store) Search(
	ctx context.Context,
	query string,
	mode domain.QueryMode,
	types []string,
	limit int,
) ([]domain.SearchResult, error) {
	parser := "websearch_to_tsquery"
	if mode == domain.QueryModePlain {
		parser = "plainto_tsquery"
	}

	sb := `
		SELECT type, id, parent_id, title, content, url, metadata, created_at, updated_at,
		       ts_rank(fts, q) AS rank
		FROM items, ` + parser + `('english', $1) AS q
		WHERE fts @@ q
	`
	args := []any{query}

	if len(types) > 0 {
		args = append(args, pq.Array(types))
		sb += fmt.Sprintf(" AND type = ANY($%d)", len(args))
	}

	sb += " ORDER BY rank DESC, type, id"

	if limit > 0 {
		args = append(args, limit)
		sb += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, sb, args...)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", mode, mapSearchError(err))
	}
	defer rows.Close()

	var results []domain.SearchResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var result domain.SearchResult
		if err := scanItem(rows.Scan, &result.Item, &result.Score); err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", mapSearchError(err))
	}
	return results, nil
}

// Get retrieves one item by its composite key.
func (s *Store) Get(ctx context.Context, key domain.Key) (*domain.IndexedItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT type, id, parent_id, title, content, url, metadata, created_at, updated_at
		FROM items WHERE type = $1 AND id = $2
	`, key.Type, key.ID)

	var item domain.IndexedItem
	if err := scanItem(row.Scan, &item, nil); err != nil {
		return nil, err
	}
	return &item, nil
}

// CountByType returns how many rows each entity kind has.
func (s *Store) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, COUNT(*) FROM items GROUP BY type
	`)
	if err != nil {
		return nil, fmt.Errorf("counting items: %w", mapError(err))
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var itemType string
		var count int
		if err := rows.Scan(&itemType, &count); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[itemType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating counts: %w", err)
	}
	return counts, nil
}

// scanItem fills an item (and optionally a rank) from one row. scan is
// either sql.Row.Scan or sql.Rows.Scan.
func scanItem(scan func(...any) error, item *domain.IndexedItem, rank *float64) error {
	var parentID sql.NullString
	var metadataJSON []byte

	dest := []any{
		&item.Type, &item.ID, &parentID,
		&item.Title, &item.Content, &item.URL,
		&metadataJSON, &item.CreatedAt, &item.UpdatedAt,
	}
	if rank != nil {
		dest = append(dest, rank)
	}

	if err := scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("scanning item: %w", mapError(err))
	}

	if parentID.Valid {
		item.ParentID = &parentID.String
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &item.Metadata); err != nil {
			return fmt.Errorf("unmarshaling metadata: %w", err)
		}
	}
	return nil
}

// nullableString maps a nil pointer to SQL NULL.
func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// mapError translates driver failures into domain sentinels. Statement
// cancellation, whether from a context deadline or a server-side
// statement_timeout, becomes ErrStoreTimeout.
func mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrStoreTimeout, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case string(pqErr.Code) == codeQueryCanceled:
			return fmt.Errorf("%w: %w", domain.ErrStoreTimeout, err)
		case string(pqErr.Code.Class()) == classConnection:
			return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
		}
	}
	return err
}

// mapSearchError additionally treats parser syntax errors as
// ErrQuerySyntax, so the caller can retry in the plain dialect.
func mapSearchError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code.Class()) == classSyntax {
		return fmt.Errorf("%w: %w", domain.ErrQuerySyntax, err)
	}
	return mapError(err)
}
