package auth

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

// RefreshingToken is an access token that refreshes itself when read.
//
// It is returned from [RefreshingCredentials] and the package helpers. The
// held token is replaced when [RefreshingToken.AccessToken] finds it
// expiring; expiry is hidden from callers, so ExpiresIn and ExpiresAt always
// report unknown and IsExpiring is always false.
type RefreshingToken struct {
	mu      sync.Mutex
	token   *Token
	manager Manager
	logger  *log.Logger
}

// TokenOption configures a [RefreshingToken].
type TokenOption func(*RefreshingToken)

// WithLogger logs refreshes and refresh failures to logger.
func WithLogger(logger *log.Logger) TokenOption {
	return func(t *RefreshingToken) {
		t.logger = logger
	}
}

// NewRefreshingToken wraps token, refreshing it through manager.
func NewRefreshingToken(token *Token, manager Manager, opts ...TokenOption) *RefreshingToken {
	t := &RefreshingToken{token: token, manager: manager}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *RefreshingToken) current() *Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.token
}

// AccessToken returns a usable access token, refreshing the held token first
// if it is expiring.
//
// A refresh error is returned as the manager reported it and the held token
// is kept, so the next call tries again.
func (t *RefreshingToken) AccessToken(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.token.IsExpiring() {
		return t.token.AccessToken, nil
	}

	fresh, err := t.refresh(ctx)
	if err != nil {
		if t.logger != nil {
			t.logger.Warn("token refresh failed", "error", err)
		}
		return "", err
	}

	t.token = fresh
	if t.logger != nil {
		t.logger.Debug("token refreshed", "expires_at", fresh.ExpiresAt.Format(time.RFC3339))
	}
	return fresh.AccessToken, nil
}

// refresh asks the manager for a replacement of the held token. Tokens
// without a refresh token came from the client credentials flow and are
// simply requested again.
func (t *RefreshingToken) refresh(ctx context.Context) (*Token, error) {
	if t.token.RefreshToken == "" {
		return t.manager.RequestClientToken(ctx)
	}
	return t.manager.RefreshUserToken(ctx, t.token.RefreshToken)
}

// RefreshToken returns the refresh token of the held token.
func (t *RefreshingToken) RefreshToken() string {
	return t.current().RefreshToken
}

// TokenType returns the type of the held token.
func (t *RefreshingToken) TokenType() string {
	return t.current().TokenType
}

// Scope returns the scope of the held token.
func (t *RefreshingToken) Scope() Scope {
	return t.current().Scope
}

// ExpiresIn always reports an unknown lifetime.
func (t *RefreshingToken) ExpiresIn() (time.Duration, bool) {
	return 0, false
}

// ExpiresAt always reports an unknown expiry.
func (t *RefreshingToken) ExpiresAt() (time.Time, bool) {
	return time.Time{}, false
}

// IsExpiring is always false.
func (t *RefreshingToken) IsExpiring() bool {
	return false
}

// Token implements [oauth2.TokenSource]. The returned token carries no expiry,
// so [oauth2.Transport] asks again on every request.
func (t *RefreshingToken) Token() (*oauth2.Token, error) {
	access, err := t.AccessToken(context.Background())
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: access, TokenType: t.TokenType()}, nil
}

// RefreshingCredentials hands out [RefreshingToken]s backed by a [Manager].
type RefreshingCredentials struct {
	manager Manager
	opts    []TokenOption
}

// NewRefreshingCredentials creates refreshing credentials around a [Credentials] manager.
func NewRefreshingCredentials(clientID, clientSecret, redirectURI string, opts ...Option) *RefreshingCredentials {
	return WrapManager(NewCredentials(clientID, clientSecret, redirectURI, opts...))
}

// WrapManager creates refreshing credentials around any manager. opts are
// applied to every token handed out.
func WrapManager(manager Manager, opts ...TokenOption) *RefreshingCredentials {
	return &RefreshingCredentials{manager: manager, opts: opts}
}

// Manager returns the underlying manager.
func (c *RefreshingCredentials) Manager() Manager {
	return c.manager
}

func (c *RefreshingCredentials) wrap(token *Token) *RefreshingToken {
	return NewRefreshingToken(token, c.manager, c.opts...)
}

// RequestClientToken requests a refreshing client credentials token.
func (c *RefreshingCredentials) RequestClientToken(ctx context.Context) (*RefreshingToken, error) {
	token, err := c.manager.RequestClientToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.wrap(token), nil
}

// UserAuthorisationURL constructs the authorisation URL. See [Manager].
func (c *RefreshingCredentials) UserAuthorisationURL(scope Scope, state string, showDialog bool) string {
	return c.manager.UserAuthorisationURL(scope, state, showDialog)
}

// RequestUserToken exchanges an authorization code for a refreshing user token.
func (c *RefreshingCredentials) RequestUserToken(ctx context.Context, code string) (*RefreshingToken, error) {
	token, err := c.manager.RequestUserToken(ctx, code)
	if err != nil {
		return nil, err
	}
	return c.wrap(token), nil
}

// RefreshUserToken loads a refreshing user token from a stored refresh token.
func (c *RefreshingCredentials) RefreshUserToken(ctx context.Context, refreshToken string) (*RefreshingToken, error) {
	token, err := c.manager.RefreshUserToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return c.wrap(token), nil
}
