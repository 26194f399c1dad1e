// Package tokenstore keeps the Spotify refresh token between runs.
//
// Refresh tokens are stored as opaque strings under a name. Three backends
// are available, selected by the [storage] type setting:
//   - sqlite: a row in the refresh_tokens table of the local database
//   - keyring: the OS credential store (macOS Keychain, Secret Service, Windows Credential Manager)
//   - env: read-only, SPOTIFY_REFRESH_TOKEN or credentials.spotify.refresh_token
//
// Writing an empty token clears it.
package tokenstore
