package tokenstore

import (
	"context"

	"github.com/desertthunder/spx/internal/shared"
)

// Env serves a refresh token supplied through configuration. It cannot be written.
type Env struct {
	token string
}

// NewEnv creates a read-only store holding token.
func NewEnv(token string) *Env {
	return &Env{token: token}
}

func (e *Env) Read(ctx context.Context) (string, error) {
	if e.token == "" {
		return "", shared.ErrNoRefreshToken
	}
	return e.token, nil
}

func (e *Env) Write(ctx context.Context, token string) error {
	return shared.ErrReadOnlyStore
}

func (e *Env) Close() error { return nil }
