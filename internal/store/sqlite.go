package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS drawing (
	name       TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	revision   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore keeps drawings in a SQLite table, one row per drawing name.
type SQLiteStore struct {
	db   *sql.DB
	path string
	name string
}

// OpenSQLite opens (and creates) the database at path. name is the row the
// store reads and writes.
func OpenSQLite(path, name string) (*SQLiteStore, error) {
	if name == "" {
		name = "default"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema in %s: %w", path, err)
	}
	return &SQLiteStore{db: db, path: path, name: name}, nil
}

// Save stores data under a fresh revision id.
func (s *SQLiteStore) Save(ctx context.Context, data string) error {
	return s.SaveRevision(ctx, data, uuid.NewString())
}

// SaveRevision upserts the drawing row.
func (s *SQLiteStore) SaveRevision(ctx context.Context, data, revision string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO drawing (name, data, revision, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(name) DO UPDATE SET data = excluded.data, revision = excluded.revision, updated_at = CURRENT_TIMESTAMP`,
		s.name, data, revision)
	if err != nil {
		return fmt.Errorf("save drawing %q: %w", s.name, err)
	}
	return nil
}

// Load returns the stored drawing or EmptyDrawing.
func (s *SQLiteStore) Load(ctx context.Context) (string, error) {
	data, _, err := s.load(ctx)
	return data, err
}

// Revision returns the revision id of the last save, empty if none.
func (s *SQLiteStore) Revision(ctx context.Context) (string, error) {
	_, rev, err := s.load(ctx)
	return rev, err
}

func (s *SQLiteStore) load(ctx context.Context) (string, string, error) {
	var data, rev string
	err := s.db.QueryRowContext(ctx, `SELECT data, revision FROM drawing WHERE name = ?`, s.name).Scan(&data, &rev)
	if errors.Is(err, sql.ErrNoRows) {
		return EmptyDrawing, "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("load drawing %q: %w", s.name, err)
	}
	return data, rev, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) String() string { return "sqlite:" + s.path + "#" + s.name }
