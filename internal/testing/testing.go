// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/spx/auth"
	"github.com/desertthunder/spx/internal/shared"
)

// NewToken returns a token that stays valid for an hour.
func NewToken(access, refresh string) *auth.Token {
	return &auth.Token{
		AccessToken:  access,
		TokenType:    "Bearer",
		Scope:        auth.ParseScope("user-read-private"),
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

// MockManager is a test double for [auth.Manager] that records its calls
type MockManager struct {
	mu sync.Mutex

	ClientToken    *auth.Token
	UserToken      *auth.Token
	RefreshedToken *auth.Token
	Err            error

	ClientCalls int
	Codes       []string
	Refreshed   []string
}

func (m *MockManager) RequestClientToken(ctx context.Context) (*auth.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClientCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ClientToken, nil
}

func (m *MockManager) UserAuthorisationURL(scope auth.Scope, state string, showDialog bool) string {
	q := url.Values{"scope": {scope.String()}, "state": {state}}
	if showDialog {
		q.Set("show_dialog", "true")
	}
	return "https://accounts.example.com/authorize?" + q.Encode()
}

func (m *MockManager) RequestUserToken(ctx context.Context, code string) (*auth.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Codes = append(m.Codes, code)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.UserToken, nil
}

func (m *MockManager) RefreshUserToken(ctx context.Context, refreshToken string) (*auth.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refreshed = append(m.Refreshed, refreshToken)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.RefreshedToken, nil
}

// MemoryStore is an in-memory refresh token store
type MemoryStore struct {
	mu       sync.Mutex
	Token    string
	ReadOnly bool
	Writes   int
}

func (s *MemoryStore) Read(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Token == "" {
		return "", shared.ErrNoRefreshToken
	}
	return s.Token, nil
}

func (s *MemoryStore) Write(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadOnly {
		return shared.ErrReadOnlyStore
	}
	s.Token = token
	s.Writes++
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
