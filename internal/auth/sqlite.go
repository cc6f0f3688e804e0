package auth

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists credentials in a SQLite database. Verification reads
// the row again on every call, so changes made by other processes sharing
// the file are honored immediately.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path, creating it and its schema as
// needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("path must not be empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			secret TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Put adds a user or replaces an existing user's secret.
func (s *SQLiteStore) Put(ctx context.Context, username string, secret string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, secret, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET secret = excluded.secret, updated_at = excluded.updated_at`,
		username, secret, now, now,
	)
	if err != nil {
		return fmt.Errorf("store user %q: %w", username, err)
	}
	return nil
}

// Remove deletes a user. Removing an absent user is a no-op.
func (s *SQLiteStore) Remove(ctx context.Context, username string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username); err != nil {
		return fmt.Errorf("remove user %q: %w", username, err)
	}
	return nil
}

// Verify reports whether the pair matches a stored entry. Lookup failures
// other than a missing row are logged and count as a rejection.
func (s *SQLiteStore) Verify(ctx context.Context, username string, password string) bool {
	var secret string
	err := s.db.QueryRowContext(ctx, `SELECT secret FROM users WHERE username = ?`, username).Scan(&secret)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		slog.Error("lookup user secret", "user", username, "err", err)
		return false
	}

	return subtle.ConstantTimeCompare([]byte(secret), []byte(password)) == 1
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
