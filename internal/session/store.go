// Package session manages the manager credential lifecycle and its
// SQLite-backed persistence.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// credentialName is the fixed key the manager token is stored under.
const credentialName = "manager"

// Store provides SQLite-backed persistence for session credentials. It is
// the durable client storage a browser would keep in localStorage.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they
// don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS credentials (
		name TEXT PRIMARY KEY,
		token TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveToken stores the credential under the fixed name, replacing any
// previous value.
func (s *Store) SaveToken(token string) error {
	_, err := s.db.Exec(
		`INSERT INTO credentials (name, token, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		credentialName, token, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// LoadToken returns the stored credential, or the empty string if none
// exists.
func (s *Store) LoadToken() (string, error) {
	row := s.db.QueryRow(`SELECT token FROM credentials WHERE name = ?`, credentialName)

	var token string
	err := row.Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}

	return token, nil
}

// ClearToken removes the stored credential. Clearing an absent credential is
// not an error.
func (s *Store) ClearToken() error {
	_, err := s.db.Exec(`DELETE FROM credentials WHERE name = ?`, credentialName)
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
