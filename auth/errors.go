package auth

import "errors"

var (
	// ErrAuthFailed wraps every failed request to the accounts service.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrMissingRedirectURI is returned by user flows on credentials without a redirect URI.
	ErrMissingRedirectURI = errors.New("redirect URI not configured")

	// ErrMissingCode is returned when a redirect URL has no code parameter.
	ErrMissingCode = errors.New("parameter code not available")

	// ErrMultipleCodes is returned when a redirect URL has more than one code parameter.
	ErrMultipleCodes = errors.New("multiple values for parameter code")
)
