package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/desertthunder/spx/internal/shared"
)

// ParseCodeFromURL extracts the code query parameter from a redirect URL.
//
// Blank values are ignored, so "?code=" counts as missing.
func ParseCodeFromURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid redirect URL: %w", err)
	}

	var codes []string
	for _, v := range u.Query()["code"] {
		if v != "" {
			codes = append(codes, v)
		}
	}

	switch len(codes) {
	case 0:
		return "", ErrMissingCode
	case 1:
		return codes[0], nil
	default:
		return "", ErrMultipleCodes
	}
}

// RequestClientToken requests a refreshing client credentials token.
func RequestClientToken(ctx context.Context, clientID, clientSecret string, opts ...Option) (*RefreshingToken, error) {
	return NewRefreshingCredentials(clientID, clientSecret, "", opts...).RequestClientToken(ctx)
}

// RefreshUserToken loads a refreshing user token from a refresh token.
func RefreshUserToken(ctx context.Context, clientID, clientSecret, refreshToken string, opts ...Option) (*RefreshingToken, error) {
	return NewRefreshingCredentials(clientID, clientSecret, "", opts...).RefreshUserToken(ctx, refreshToken)
}

// PromptForUserToken runs the authorization code flow in the terminal with a
// default [Prompter].
func PromptForUserToken(ctx context.Context, clientID, clientSecret, redirectURI string, scope Scope, opts ...Option) (*RefreshingToken, error) {
	cred := NewRefreshingCredentials(clientID, clientSecret, redirectURI, opts...)
	return NewPrompter().UserToken(ctx, cred, scope)
}

// Prompter asks a user to log in and paste back the URL they were redirected to.
type Prompter struct {
	In   io.Reader
	Out  io.Writer
	Open func(url string) error // opens the login page, usually in a browser
}

// NewPrompter creates a [Prompter] on the standard streams that opens the
// system browser.
func NewPrompter() *Prompter {
	return &Prompter{In: os.Stdin, Out: os.Stdout, Open: shared.OpenBrowser}
}

// UserToken sends the user to the login page with the dialog forced, reads the
// pasted redirect URL and exchanges its code for a token.
func (p *Prompter) UserToken(ctx context.Context, cred *RefreshingCredentials, scope Scope) (*RefreshingToken, error) {
	loginURL := cred.UserAuthorisationURL(scope, "", true)

	fmt.Fprintln(p.Out, "Opening browser for Spotify login...")
	if p.Open == nil || p.Open(loginURL) != nil {
		fmt.Fprintf(p.Out, "Could not open a browser, visit this URL to log in:\n%s\n", loginURL)
	}

	fmt.Fprint(p.Out, "Please paste redirect URL: ")
	redirected, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && redirected != "") {
		return nil, fmt.Errorf("failed to read redirect URL: %w", err)
	}

	code, err := ParseCodeFromURL(redirected)
	if err != nil {
		return nil, err
	}
	return cred.RequestUserToken(ctx, code)
}
