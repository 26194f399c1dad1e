// Package auth requests Spotify access tokens and keeps them fresh.
//
// # Credentials
//
// [Credentials] performs the three OAuth2 flows against the Spotify accounts
// service: client credentials, authorization code and refresh token. It
// satisfies [Manager], the capability the rest of the package depends on, so
// tests can substitute their own implementation.
//
// # Refreshing tokens
//
// [RefreshingToken] wraps a [Token] and refreshes it on demand. The refresh is
// a side effect of [RefreshingToken.AccessToken]; every other accessor reads
// the held token as is. Expiry is never reported by the wrapper.
//
//	cred := auth.NewRefreshingCredentials(clientID, clientSecret, redirectURI)
//	token, err := cred.RequestClientToken(ctx)
//	...
//	access, err := token.AccessToken(ctx) // refreshed when close to expiry
//
// A [RefreshingToken] is also an [oauth2.TokenSource], so it can back an
// [oauth2.NewClient] transport directly.
//
// # Authorization code flow
//
// [Prompter] walks a terminal user through the authorization code flow: it
// opens the authorisation URL, reads the redirect URL the user pastes back,
// extracts the code with [ParseCodeFromURL] and exchanges it.
package auth
