package tokenstore

import (
	"context"
	"fmt"

	"github.com/desertthunder/spx/internal/shared"
)

// Storage types accepted in the configuration.
const (
	TypeSQLite  = "sqlite"
	TypeKeyring = "keyring"
	TypeEnv     = "env"
)

// Store reads and writes a refresh token.
type Store interface {
	// Read returns the stored token, or [shared.ErrNoRefreshToken] if there is none.
	Read(ctx context.Context) (string, error)
	// Write replaces the stored token. An empty token clears it.
	Write(ctx context.Context, token string) error
	// Close releases resources held by the store.
	Close() error
}

// Open creates the store described by config.
func Open(config *shared.Config) (Store, error) {
	storage := config.Storage
	name := storage.Name
	if name == "" {
		name = "default"
	}

	switch storage.Type {
	case TypeSQLite, "":
		db, err := shared.OpenDatabase(config.Database)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		}
		return NewSQLite(db, name, config.Credentials.Spotify.ClientID, true), nil
	case TypeKeyring:
		return NewKeyring(storage.KeyringService, name), nil
	case TypeEnv:
		return NewEnv(config.Credentials.Spotify.RefreshToken), nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownStorage, storage.Type)
	}
}
