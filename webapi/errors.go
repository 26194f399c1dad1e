package webapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/spx/internal/shared"
)

var (
	// ErrAPIRequest is matched by every [*Error].
	ErrAPIRequest = shared.ErrAPIRequest
	// ErrTokenExpired is matched by a 401 [*Error].
	ErrTokenExpired = shared.ErrTokenExpired
	// ErrNotFound is matched by a 404 [*Error].
	ErrNotFound = errors.New("resource not found")
	// ErrRateLimited is matched by a 429 [*Error].
	ErrRateLimited = errors.New("rate limited")
)

// Error is a non-2xx response from the API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify API error: status %d", e.Status)
	}
	return fmt.Sprintf("spotify API error: status %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return ErrAPIRequest
}

// Is lets status-specific sentinels match, so errors.Is(err, ErrTokenExpired) holds for a 401.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTokenExpired:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	}
	return false
}
