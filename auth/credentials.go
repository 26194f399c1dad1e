package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// Manager performs the OAuth2 flows a [RefreshingToken] depends on.
type Manager interface {
	// RequestClientToken requests an application token with client credentials.
	RequestClientToken(ctx context.Context) (*Token, error)

	// UserAuthorisationURL builds the login URL a user is redirected to.
	// Step 1/2 of the authorization code flow.
	UserAuthorisationURL(scope Scope, state string, showDialog bool) string

	// RequestUserToken exchanges an authorization code for a user token.
	// Step 2/2 of the authorization code flow.
	RequestUserToken(ctx context.Context, code string) (*Token, error)

	// RefreshUserToken exchanges a refresh token for a new access token.
	RefreshUserToken(ctx context.Context, refreshToken string) (*Token, error)
}

// Credentials is the [Manager] for the Spotify accounts service, built on [oauth2].
type Credentials struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// Option configures [Credentials].
type Option func(*Credentials)

// WithHTTPClient sets the client used for token requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Credentials) {
		c.httpClient = client
	}
}

// WithEndpoint points the credentials at another authorization server.
func WithEndpoint(authURL, tokenURL string) Option {
	return func(c *Credentials) {
		c.config.Endpoint.AuthURL = authURL
		c.config.Endpoint.TokenURL = tokenURL
	}
}

// NewCredentials creates a credentials manager. redirectURI may be empty when
// only client credentials and refresh tokens are used.
func NewCredentials(clientID, clientSecret, redirectURI string, opts ...Option) *Credentials {
	c := &Credentials{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   spotifyAuthURL,
				TokenURL:  spotifyTokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ClientID returns the application's client ID.
func (c *Credentials) ClientID() string {
	return c.config.ClientID
}

// RedirectURI returns the configured redirect URI.
func (c *Credentials) RedirectURI() string {
	return c.config.RedirectURL
}

func (c *Credentials) context(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// RequestClientToken requests a token with the client credentials flow.
// The token has no refresh token and no user scope.
func (c *Credentials) RequestClientToken(ctx context.Context) (*Token, error) {
	cc := &clientcredentials.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		TokenURL:     c.config.Endpoint.TokenURL,
		AuthStyle:    c.config.Endpoint.AuthStyle,
	}

	tok, err := cc.Token(c.context(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: client token request: %w", ErrAuthFailed, err)
	}
	return fromOAuth2(tok), nil
}

// UserAuthorisationURL constructs the authorisation URL for the user to visit.
//
// An empty state is left out of the URL. showDialog forces the login dialog
// even if the user already authorised the application.
func (c *Credentials) UserAuthorisationURL(scope Scope, state string, showDialog bool) string {
	var opts []oauth2.AuthCodeOption
	if len(scope) > 0 {
		opts = append(opts, oauth2.SetAuthURLParam("scope", scope.String()))
	}
	if showDialog {
		opts = append(opts, oauth2.SetAuthURLParam("show_dialog", "true"))
	}
	return c.config.AuthCodeURL(state, opts...)
}

// RequestUserToken exchanges the code from the redirect for a user token.
func (c *Credentials) RequestUserToken(ctx context.Context, code string) (*Token, error) {
	if c.config.RedirectURL == "" {
		return nil, ErrMissingRedirectURI
	}

	tok, err := c.config.Exchange(c.context(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: user token request: %w", ErrAuthFailed, err)
	}
	return fromOAuth2(tok), nil
}

// RefreshUserToken requests a new access token with a refresh token.
//
// The accounts service may omit the refresh token from its response, in which
// case the one passed in stays valid and is carried over.
func (c *Credentials) RefreshUserToken(ctx context.Context, refreshToken string) (*Token, error) {
	src := c.config.TokenSource(c.context(ctx), &oauth2.Token{RefreshToken: refreshToken})

	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: token refresh: %w", ErrAuthFailed, err)
	}

	token := fromOAuth2(tok)
	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}
	return token, nil
}
