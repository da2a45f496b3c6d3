// Package localstore is the device-local key/value storage: a handful
// of personal-metric strings kept outside the remote store.
package localstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store persists string keys to string values in a local sqlite file.
// Missing keys read as the empty string.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path. Use ":memory:" for an
// ephemeral store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("localstore path cannot be empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing local store: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the value for key, "" when the key has never been set.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set writes the value for key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
