package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/spx/internal/shared"
	"github.com/zalando/go-keyring"
)

// Keyring stores the refresh token in the OS credential store.
type Keyring struct {
	service string
	user    string
}

// NewKeyring creates a keyring store. service defaults to "spx".
func NewKeyring(service, user string) *Keyring {
	if service == "" {
		service = "spx"
	}
	return &Keyring{service: service, user: user}
}

// Read returns the token from the keyring.
func (k *Keyring) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	token, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", shared.ErrNoRefreshToken
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	return token, nil
}

// Write sets the token in the keyring, or removes it when empty.
func (k *Keyring) Write(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if token == "" {
		if err := keyring.Delete(k.service, k.user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		}
		return nil
	}

	if err := keyring.Set(k.service, k.user, token); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	return nil
}

// Close is a no-op.
func (k *Keyring) Close() error { return nil }
