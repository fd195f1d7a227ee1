// Package snapshot persists whole-state JSON documents, one per key.
package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Load when no document exists for the key.
var ErrNotFound = errors.New("snapshot not found")

// Store reads and writes snapshot documents in SQLite. Each Save fully
// overwrites the previous document for the key.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save upserts the document under key.
func (s *Store) Save(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// Load returns the document stored under key, or ErrNotFound.
func (s *Store) Load(key string) ([]byte, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	return []byte(data), nil
}

// Delete removes the document under key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}
