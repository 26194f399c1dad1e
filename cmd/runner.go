package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spx/auth"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/internal/tokenstore"
	"github.com/desertthunder/spx/internal/ui"
	"github.com/desertthunder/spx/webapi"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	manager    auth.Manager
	store      tokenstore.Store
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	palette    *ui.Palette
	open       func(string) error
	environ    func() []string
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Config, Manager and Store are resolved from the configuration file when nil.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Manager    auth.Manager
	Store      tokenstore.Store
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	Palette    *ui.Palette
	Open       func(string) error
	Environ    func() []string
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Palette == nil {
		opts.Palette = ui.For(opts.Output)
	}
	if opts.Open == nil {
		opts.Open = shared.OpenBrowser
	}
	if opts.Environ == nil {
		opts.Environ = os.Environ
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		manager:    opts.Manager,
		store:      opts.Store,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
		palette:    opts.Palette,
		open:       opts.Open,
		environ:    opts.Environ,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, artistCommand, meCommand, playlistsCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration named by --config, overlays SPOTIFY_* variables and sets the log level.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.config == nil {
		config, err := r.loadConfig()
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	if err := shared.ApplyEnvironment(r.config, r.environ); err != nil {
		return ctx, err
	}

	return ctx, nil
}

// After releases the token store.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

func (r *Runner) loadConfig() (*shared.Config, error) {
	if r.configPath == "" {
		return shared.DefaultConfig(), nil
	}
	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		return shared.DefaultConfig(), nil
	}

	config, err := shared.LoadConfig(r.configPath)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("loaded config", "path", r.configPath)
	return config, nil
}

func (r *Runner) cfg() *shared.Config {
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}
	return r.config
}

// credentials wraps the configured manager so it hands out refreshing tokens.
func (r *Runner) credentials() (*auth.RefreshingCredentials, error) {
	if r.manager == nil {
		spotify := r.cfg().Credentials.Spotify
		if err := spotify.Validate(); err != nil {
			return nil, err
		}
		r.manager = auth.NewCredentials(spotify.ClientID, spotify.ClientSecret, spotify.RedirectURI,
			auth.WithHTTPClient(r.httpClient))
	}
	return auth.WrapManager(r.manager, auth.WithLogger(shared.WithLogger(r.logger, "component", "token"))), nil
}

func (r *Runner) tokenStore() (tokenstore.Store, error) {
	if r.store == nil {
		store, err := tokenstore.Open(r.cfg())
		if err != nil {
			return nil, err
		}
		r.store = store
	}
	return r.store, nil
}

// clientToken requests a token with the client credentials flow.
func (r *Runner) clientToken(ctx context.Context) (*auth.RefreshingToken, error) {
	cred, err := r.credentials()
	if err != nil {
		return nil, err
	}
	return cred.RequestClientToken(ctx)
}

// userToken exchanges the stored refresh token for a user token.
func (r *Runner) userToken(ctx context.Context) (*auth.RefreshingToken, error) {
	store, err := r.tokenStore()
	if err != nil {
		return nil, err
	}

	refresh, err := store.Read(ctx)
	if errors.Is(err, shared.ErrNoRefreshToken) {
		return nil, fmt.Errorf("%w: run 'spx auth login' first", shared.ErrNotAuthenticated)
	}
	if err != nil {
		return nil, err
	}

	cred, err := r.credentials()
	if err != nil {
		return nil, err
	}

	token, err := cred.RefreshUserToken(ctx, refresh)
	if err != nil {
		return nil, err
	}

	r.saveRefreshToken(ctx, token, refresh)
	return token, nil
}

// saveRefreshToken stores the token's refresh token when it differs from previous.
// Store failures are logged since the token in hand is still usable.
func (r *Runner) saveRefreshToken(ctx context.Context, token *auth.RefreshingToken, previous string) bool {
	refresh := token.RefreshToken()
	if refresh == "" || refresh == previous {
		return false
	}

	store, err := r.tokenStore()
	if err == nil {
		err = store.Write(ctx, refresh)
	}
	if err != nil {
		r.logger.Warn("failed to save refresh token", "error", err)
		return false
	}

	r.logger.Debug("saved refresh token", "storage", r.cfg().Storage.Type)
	return true
}

func (r *Runner) apiClient(token *auth.RefreshingToken) *webapi.Client {
	api := r.cfg().API
	return webapi.NewClient(token,
		webapi.WithBaseURL(api.BaseURL),
		webapi.WithRateLimit(api.RateLimit),
		webapi.WithHTTPClient(r.httpClient),
		webapi.WithLogger(shared.WithLogger(r.logger, "component", "webapi")),
	)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeLine(s string) error {
	return r.writePlain("%s\n", s)
}
