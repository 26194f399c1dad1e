package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrStateMismatch    = fmt.Errorf("state mismatch")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Token storage errors
	ErrReadOnlyStore    = fmt.Errorf("token store is read-only")
	ErrUnknownStorage   = fmt.Errorf("unknown token storage type")
	ErrStoreUnavailable = fmt.Errorf("token store unavailable")

	// API errors
	ErrAPIRequest       = fmt.Errorf("API request failed")
	ErrArtistNotFound   = fmt.Errorf("artist not found")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
