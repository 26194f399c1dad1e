package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/desertthunder/spx/auth"
	"github.com/desertthunder/spx/internal/server"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/urfave/cli/v3"
)

// scope returns the --scope flag, falling back to the configured scope.
func (r *Runner) scope(cmd *cli.Command) auth.Scope {
	if s := cmd.String("scope"); s != "" {
		return auth.ParseScope(s)
	}
	return auth.ParseScope(r.cfg().Credentials.Spotify.Scope)
}

// AuthClient requests a token with the client credentials flow.
func (r *Runner) AuthClient(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("requesting client credentials token")

	token, err := r.clientToken(ctx)
	if err != nil {
		return err
	}

	return r.printToken(ctx, cmd, token)
}

// AuthLogin runs the authorization code flow, either by reading the pasted
// redirect URL or by receiving the redirect on a local server, and stores the refresh token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	cred, err := r.credentials()
	if err != nil {
		return err
	}

	if r.cfg().Credentials.Spotify.RedirectURI == "" {
		return fmt.Errorf("%w: redirect_uri must be set to log in", shared.ErrMissingCredentials)
	}

	scope := r.scope(cmd)
	r.logger.Info("starting authorization", "scope", scope.String(), "listen", cmd.Bool("listen"))

	var token *auth.RefreshingToken
	if cmd.Bool("listen") {
		token, err = r.listenForToken(ctx, cred, scope, cmd.Duration("timeout"))
	} else {
		prompter := &auth.Prompter{In: r.input, Out: r.output, Open: r.open}
		token, err = prompter.UserToken(ctx, cred, scope)
	}
	if err != nil {
		return err
	}

	r.writeLine(r.palette.OK("Logged in"))
	r.writeLine(r.palette.Field("Scope", token.Scope().String()))

	if !r.saveRefreshToken(ctx, token, "") {
		r.writeLine(r.palette.Warn("Refresh token was not stored. Set SPOTIFY_REFRESH_TOKEN to reuse it:"))
		r.writeLine(token.RefreshToken())
	} else {
		r.writeLine(r.palette.OK(fmt.Sprintf("Refresh token saved to %s storage", r.cfg().Storage.Type)))
	}

	return nil
}

// listenForToken serves the redirect URI locally and waits for the browser to reach it.
func (r *Runner) listenForToken(ctx context.Context, cred *auth.RefreshingCredentials, scope auth.Scope, timeout time.Duration) (*auth.RefreshingToken, error) {
	path := "/callback"
	if u, err := url.Parse(r.cfg().Credentials.Spotify.RedirectURI); err == nil && u.Path != "" {
		path = u.Path
	}

	state := shared.GenerateState()
	handler := server.NewCallbackHandler(cred, path, state)

	logger := shared.WithLogger(r.logger, "component", "callback")
	router := server.NewRouter()
	router.Use(server.Recover(logger), server.Logging(logger))
	router.Mount(handler)

	srv, err := server.Listen(r.cfg().Server.Addr(), router, logger)
	if err != nil {
		return nil, err
	}
	defer srv.Shutdown(context.Background())

	loginURL := cred.UserAuthorisationURL(scope, state, true)
	r.writeLine("→ Opening browser for Spotify login...")
	if err := r.open(loginURL); err != nil {
		r.logger.Warn("failed to open browser automatically", "error", err)
		r.writeLine(r.palette.Warn("Could not open browser automatically."))
		r.writePlain("Please open this URL in your browser:\n%s\n\n", loginURL)
	}

	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	r.writePlain("→ Waiting for authorization (%s timeout)...\n", timeout)

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return handler.Wait(waitCtx, srv.Errors())
}

// AuthRefresh exchanges the stored refresh token and stores a rotated one.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	token, err := r.userToken(ctx)
	if err != nil {
		return err
	}
	return r.printToken(ctx, cmd, token)
}

// AuthURL prints an authorisation URL without starting a flow.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	cred, err := r.credentials()
	if err != nil {
		return err
	}

	state := cmd.String("state")
	if state == "" {
		state = shared.GenerateState()
	}

	return r.writeLine(cred.UserAuthorisationURL(r.scope(cmd), state, cmd.Bool("show-dialog")))
}

// AuthLogout clears the stored refresh token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	store, err := r.tokenStore()
	if err != nil {
		return err
	}

	if err := store.Write(ctx, ""); err != nil {
		if errors.Is(err, shared.ErrReadOnlyStore) {
			return fmt.Errorf("%w: unset SPOTIFY_REFRESH_TOKEN instead", err)
		}
		return err
	}

	r.logger.Info("cleared refresh token", "storage", r.cfg().Storage.Type)
	return r.writeLine(r.palette.OK("Logged out"))
}

type tokenOutput struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (r *Runner) printToken(ctx context.Context, cmd *cli.Command, token *auth.RefreshingToken) error {
	access, err := token.AccessToken(ctx)
	if err != nil {
		return err
	}

	out := tokenOutput{
		AccessToken:  access,
		TokenType:    token.TokenType(),
		Scope:        token.Scope().String(),
		RefreshToken: token.RefreshToken(),
	}

	if cmd.Bool("json") {
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	r.writeLine(r.palette.OK("Token acquired"))
	r.writeLine(r.palette.Field("Access token", out.AccessToken))
	r.writeLine(r.palette.Field("Type", out.TokenType))
	if out.Scope != "" {
		r.writeLine(r.palette.Field("Scope", out.Scope))
	}
	return nil
}
