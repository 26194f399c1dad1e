package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spx/internal/shared"
)

// SQLite stores the refresh token in the refresh_tokens table.
type SQLite struct {
	db       *sql.DB
	name     string
	clientID string
	owned    bool
}

// NewSQLite creates a store on a migrated database. When owned is true, Close closes db.
func NewSQLite(db *sql.DB, name, clientID string, owned bool) *SQLite {
	return &SQLite{db: db, name: name, clientID: clientID, owned: owned}
}

// Read returns the token stored under the store's name.
func (s *SQLite) Read(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, "SELECT token FROM refresh_tokens WHERE name = ?", s.name).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", shared.ErrNoRefreshToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to query refresh token: %w", err)
	}
	return token, nil
}

// Write upserts the token, or deletes the row when token is empty.
func (s *SQLite) Write(ctx context.Context, token string) error {
	if token == "" {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE name = ?", s.name); err != nil {
			return fmt.Errorf("failed to delete refresh token: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO refresh_tokens (name, client_id, token, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET client_id = excluded.client_id, token = excluded.token, updated_at = excluded.updated_at
	`

	now := time.Now()
	if _, err := s.db.ExecContext(ctx, query, s.name, s.clientID, token, now, now); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// Close closes the database if the store owns it.
func (s *SQLite) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
