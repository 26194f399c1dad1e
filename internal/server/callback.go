package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/spx/auth"
	"github.com/desertthunder/spx/internal/shared"
)

// Exchanger trades an authorization code for a token. [auth.RefreshingCredentials] implements it.
type Exchanger interface {
	RequestUserToken(ctx context.Context, code string) (*auth.RefreshingToken, error)
}

// Result is the outcome of a callback.
type Result struct {
	Token *auth.RefreshingToken
	Err   error
}

// CallbackHandler serves the OAuth redirect URI.
type CallbackHandler struct {
	exchanger Exchanger
	state     string
	path      string
	results   chan Result
	once      sync.Once

	mu  sync.Mutex
	hit bool
}

// NewCallbackHandler creates a handler on path that expects state and exchanges codes through exchanger.
// An empty state disables the state check.
func NewCallbackHandler(exchanger Exchanger, path, state string) *CallbackHandler {
	if path == "" {
		path = "/callback"
	}
	return &CallbackHandler{
		exchanger: exchanger,
		state:     state,
		path:      path,
		results:   make(chan Result, 1),
	}
}

// Routes returns the callback path.
func (h *CallbackHandler) Routes() []string {
	return []string{h.path}
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.hit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.hit = true
	h.mu.Unlock()

	query := r.URL.Query()

	if h.state != "" && query.Get("state") != h.state {
		h.send(Result{Err: shared.ErrStateMismatch})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	if reason := query.Get("error"); reason != "" {
		h.send(Result{Err: fmt.Errorf("%w: %s", auth.ErrAuthFailed, reason)})
		http.Error(w, "Authorization denied", http.StatusBadRequest)
		return
	}

	code, err := auth.ParseCodeFromURL(r.URL.String())
	if err != nil {
		h.send(Result{Err: err})
		http.Error(w, "Invalid authorization code", http.StatusBadRequest)
		return
	}

	token, err := h.exchanger.RequestUserToken(r.Context(), code)
	if err != nil {
		h.send(Result{Err: err})
		http.Error(w, "Token exchange failed", http.StatusBadGateway)
		return
	}

	h.send(Result{Token: token})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

func (h *CallbackHandler) send(result Result) {
	h.once.Do(func() {
		h.results <- result
		close(h.results)
	})
}

// Results delivers exactly one [Result] and is then closed.
func (h *CallbackHandler) Results() <-chan Result {
	return h.results
}

// Wait blocks until the callback completes, serveErr delivers a server failure
// or ctx ends. A deadline maps to [shared.ErrTimeout].
func (h *CallbackHandler) Wait(ctx context.Context, serveErr <-chan error) (*auth.RefreshingToken, error) {
	select {
	case result := <-h.results:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Token, nil
	case err := <-serveErr:
		return nil, fmt.Errorf("callback server failed: %w", err)
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: no callback received", shared.ErrTimeout)
		}
		return nil, ctx.Err()
	}
}

const successPage = `<!DOCTYPE html>
<html>
<head>
    <title>Logged in</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; }
        h1 { color: #1DB954; }
    </style>
</head>
<body>
    <div>
        <h1>Logged in to Spotify</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`
