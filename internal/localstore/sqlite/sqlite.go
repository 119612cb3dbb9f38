// Package sqlite implements localstore.Store on a SQLite file via the
// pure-Go modernc.org driver. Browser profiles keep local storage in a
// SQLite file; a single kv table reproduces that layout.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Karasal/Call-Sal-sub000/internal/localstore"
)

// Store persists key/value pairs in a single SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at the given DSN.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	// Local storage has no concurrent writers; a single connection
	// avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate creates the kv table when it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to apply kv migration: %w", err)
	}
	return nil
}

// Ping tests the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetItem implements localstore.Store.
func (s *Store) GetItem(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", localstore.ErrNoItem
		}
		return "", fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

// SetItem implements localstore.Store. The value is replaced wholesale,
// matching the replace-the-collection write semantics of the portal.
func (s *Store) SetItem(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// RemoveItem implements localstore.Store.
func (s *Store) RemoveItem(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}
