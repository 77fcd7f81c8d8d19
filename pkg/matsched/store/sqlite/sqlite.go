package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/project"
	"github.com/cognicore/matsched/pkg/matsched/store"
)

// sqliteStore implements the RecordSource interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.RecordSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// single connection: concurrent Puts queue instead of hitting SQLITE_BUSY
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS project_records (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	payload TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_project_records_updated ON project_records(updated_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Get retrieves a record by id
func (s *sqliteStore) Get(ctx context.Context, id string) (project.Record, error) {
	key, err := store.NormalizeID(id)
	if err != nil {
		return project.Record{}, err
	}
	var payload string
	err = s.db.QueryRowContext(ctx, `SELECT payload FROM project_records WHERE id = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return project.Record{}, fmt.Errorf("record %s: %w", key, internalerr.ErrNotFound)
	}
	if err != nil {
		return project.Record{}, err
	}
	return project.Decode([]byte(payload))
}

// List returns every stored record, newest first
func (s *sqliteStore) List(ctx context.Context) ([]store.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, updated_at FROM project_records ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Summary
	for rows.Next() {
		var sum store.Summary
		var updated string
		if err := rows.Scan(&sum.ID, &sum.Name, &updated); err != nil {
			return nil, err
		}
		sum.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Put inserts or replaces a record
func (s *sqliteStore) Put(ctx context.Context, rec project.Record) (string, error) {
	if err := store.AssignID(&rec); err != nil {
		return "", err
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO project_records(id, name, payload, updated_at) VALUES(?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, payload = excluded.payload, updated_at = excluded.updated_at`,
		rec.ID, rec.Name, string(payload), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
