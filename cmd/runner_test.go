package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spx/auth"
	"github.com/desertthunder/spx/internal/shared"
	tu "github.com/desertthunder/spx/internal/testing"
	"github.com/desertthunder/spx/internal/ui"
)

type harness struct {
	runner  *Runner
	output  *bytes.Buffer
	config  *shared.Config
	manager *tu.MockManager
	store   *tu.MemoryStore
	opened  []string
}

// newHarness builds a runner around a mock manager, an in-memory store and a fake Web API serving routes.
func newHarness(t *testing.T, input string, routes map[string]string) *harness {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Errorf("expected bearer token on %s", r.URL.Path)
		}
		body, ok := routes[r.URL.Path]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":{"status":404,"message":"Non existing id"}}`)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)

	config := shared.DefaultConfig()
	config.API.BaseURL = ts.URL
	config.API.RateLimit = 0

	h := &harness{
		output: &bytes.Buffer{},
		config: config,
		manager: &tu.MockManager{
			ClientToken:    tu.NewToken("client-access", ""),
			UserToken:      tu.NewToken("user-access", "user-refresh"),
			RefreshedToken: tu.NewToken("refreshed-access", ""),
		},
		store: &tu.MemoryStore{},
	}
	h.runner = NewRunner(RunnerOpts{
		Config:  config,
		Manager: h.manager,
		Store:   h.store,
		Logger:  log.New(io.Discard),
		Output:  h.output,
		Input:   strings.NewReader(input),
		Palette: ui.Plain(),
		Open:    func(u string) error { h.opened = append(h.opened, u); return nil },
		Environ: func() []string { return nil },
	})

	return h
}

func (h *harness) run(args ...string) error {
	return newApp(h.runner).Run(context.Background(), append([]string{"spx"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			manager := &tu.MockManager{}
			store := &tu.MemoryStore{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Manager:    manager,
				Store:      store,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.manager != manager {
				t.Error("expected manager to be set")
			}
			if runner.store != store {
				t.Error("expected store to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
			if runner.palette == nil || runner.open == nil || runner.environ == nil {
				t.Error("expected palette, browser opener and environment to be set")
			}
			if runner.cfg() == nil {
				t.Error("expected default config on first use")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		commands := NewRunner(RunnerOpts{}).register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("Before", func(t *testing.T) {
		t.Run("loads config file and environment", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			config := shared.DefaultConfig()
			config.Credentials.Spotify.ClientID = "file-id"
			config.Storage.Type = "env"
			if err := shared.SaveConfig(path, config); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			runner := NewRunner(RunnerOpts{
				Logger:  log.New(io.Discard),
				Output:  &bytes.Buffer{},
				Environ: func() []string { return []string{"SPOTIFY_CLIENT_SECRET=env-secret"} },
			})
			if err := newApp(runner).Run(context.Background(), []string{"spx", "--config", path, "auth", "url"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			spotify := runner.config.Credentials.Spotify
			if spotify.ClientID != "file-id" {
				t.Errorf("expected client id from file, got %s", spotify.ClientID)
			}
			if spotify.ClientSecret != "env-secret" {
				t.Errorf("expected client secret from environment, got %s", spotify.ClientSecret)
			}
			if runner.config.Storage.Type != "env" {
				t.Errorf("expected storage type from file, got %s", runner.config.Storage.Type)
			}
		})

		t.Run("missing file uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: log.New(io.Discard), Output: &bytes.Buffer{}, Environ: func() []string { return nil }})
			path := filepath.Join(t.TempDir(), "missing.toml")

			if err := newApp(runner).Run(context.Background(), []string{"spx", "--config", path, "auth", "url"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if runner.config.Server.Port != shared.DefaultConfig().Server.Port {
				t.Error("expected default config")
			}
		})

		t.Run("invalid file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("[credentials\n"), 0600); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			runner := NewRunner(RunnerOpts{Logger: log.New(io.Discard), Output: &bytes.Buffer{}})
			err := newApp(runner).Run(context.Background(), []string{"spx", "--config", path, "auth", "url"})
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("verbose sets debug level", func(t *testing.T) {
			logger := log.New(io.Discard)
			runner := NewRunner(RunnerOpts{Config: shared.DefaultConfig(), Logger: logger, Output: &bytes.Buffer{}, Environ: func() []string { return nil }})

			if err := newApp(runner).Run(context.Background(), []string{"spx", "--verbose", "auth", "url"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if logger.GetLevel() != log.DebugLevel {
				t.Errorf("expected debug level, got %v", logger.GetLevel())
			}
		})
	})

	t.Run("credentials", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientID = ""
		runner := NewRunner(RunnerOpts{Config: config})

		if _, err := runner.credentials(); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}

		config.Credentials.Spotify.ClientID = "id"
		config.Credentials.Spotify.ClientSecret = "secret"
		cred, err := runner.credentials()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if c, ok := cred.Manager().(*auth.Credentials); !ok || c.ClientID() != "id" {
			t.Errorf("expected credentials built from config, got %T", cred.Manager())
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("client", func(t *testing.T) {
		h := newHarness(t, "", nil)

		if err := h.run("auth", "client"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(h.output.String(), "Access token: client-access") {
			t.Errorf("expected access token in output, got %q", h.output.String())
		}
		if h.manager.ClientCalls != 1 {
			t.Errorf("expected one client token request, got %d", h.manager.ClientCalls)
		}

		t.Run("json", func(t *testing.T) {
			h := newHarness(t, "", nil)
			if err := h.run("auth", "client", "--json"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			var out tokenOutput
			if err := json.Unmarshal(h.output.Bytes(), &out); err != nil {
				t.Fatalf("expected JSON output, got %q", h.output.String())
			}
			if out.AccessToken != "client-access" || out.TokenType != "Bearer" {
				t.Errorf("unexpected token output %+v", out)
			}
		})

		t.Run("manager error", func(t *testing.T) {
			h := newHarness(t, "", nil)
			h.manager.Err = auth.ErrAuthFailed

			if err := h.run("auth", "client"); !errors.Is(err, auth.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})
	})

	t.Run("login", func(t *testing.T) {
		t.Run("pasted redirect", func(t *testing.T) {
			h := newHarness(t, "http://127.0.0.1:8080/callback?code=ABC\n", nil)

			if err := h.run("auth", "login", "--scope", "user-read-email"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(h.manager.Codes) != 1 || h.manager.Codes[0] != "ABC" {
				t.Errorf("expected code ABC to be exchanged, got %v", h.manager.Codes)
			}
			if h.store.Token != "user-refresh" {
				t.Errorf("expected refresh token to be stored, got %q", h.store.Token)
			}
			if len(h.opened) != 1 || !strings.Contains(h.opened[0], "scope=user-read-email") {
				t.Errorf("expected login URL with scope to be opened, got %v", h.opened)
			}
			if !strings.Contains(h.output.String(), "✓ Logged in") {
				t.Errorf("expected success message, got %q", h.output.String())
			}
		})

		t.Run("read-only store prints refresh token", func(t *testing.T) {
			h := newHarness(t, "http://127.0.0.1:8080/callback?code=ABC\n", nil)
			h.store.ReadOnly = true

			if err := h.run("auth", "login"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(h.output.String(), "SPOTIFY_REFRESH_TOKEN") || !strings.Contains(h.output.String(), "user-refresh") {
				t.Errorf("expected refresh token hint, got %q", h.output.String())
			}
		})

		t.Run("missing code", func(t *testing.T) {
			h := newHarness(t, "http://127.0.0.1:8080/callback?error=access_denied\n", nil)

			if err := h.run("auth", "login"); !errors.Is(err, auth.ErrMissingCode) {
				t.Errorf("expected ErrMissingCode, got %v", err)
			}
			if h.store.Writes != 0 {
				t.Error("expected nothing to be stored")
			}
		})

		t.Run("requires redirect URI", func(t *testing.T) {
			h := newHarness(t, "", nil)
			h.config.Credentials.Spotify.RedirectURI = ""

			if err := h.run("auth", "login"); !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("listen", func(t *testing.T) {
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				t.Fatalf("failed to reserve port: %v", err)
			}
			port := ln.Addr().(*net.TCPAddr).Port
			ln.Close()

			h := newHarness(t, "", nil)
			h.config.Server.Port = port
			h.runner.open = func(loginURL string) error {
				u, err := url.Parse(loginURL)
				if err != nil {
					return err
				}
				callback := fmt.Sprintf("http://127.0.0.1:%d/callback?code=LIVE&state=%s", port, u.Query().Get("state"))
				go func() {
					if resp, err := http.Get(callback); err == nil {
						resp.Body.Close()
					}
				}()
				return nil
			}

			if err := h.run("auth", "login", "--listen", "--timeout", "5s"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(h.manager.Codes) != 1 || h.manager.Codes[0] != "LIVE" {
				t.Errorf("expected code LIVE to be exchanged, got %v", h.manager.Codes)
			}
			if h.store.Token != "user-refresh" {
				t.Errorf("expected refresh token to be stored, got %q", h.store.Token)
			}
		})

		t.Run("listen timeout", func(t *testing.T) {
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				t.Fatalf("failed to reserve port: %v", err)
			}
			port := ln.Addr().(*net.TCPAddr).Port
			ln.Close()

			h := newHarness(t, "", nil)
			h.config.Server.Port = port

			start := time.Now()
			if err := h.run("auth", "login", "--listen", "--timeout", "50ms"); !errors.Is(err, shared.ErrTimeout) {
				t.Errorf("expected ErrTimeout, got %v", err)
			}
			if time.Since(start) > 5*time.Second {
				t.Error("expected timeout to be honoured")
			}
		})
	})

	t.Run("refresh", func(t *testing.T) {
		t.Run("keeps stored refresh token", func(t *testing.T) {
			h := newHarness(t, "", nil)
			h.store.Token = "stored"

			if err := h.run("auth", "refresh"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(h.manager.Refreshed) != 1 || h.manager.Refreshed[0] != "stored" {
				t.Errorf("expected refresh with stored token, got %v", h.manager.Refreshed)
			}
			if h.store.Writes != 0 {
				t.Error("expected unchanged refresh token not to be written")
			}
			if !strings.Contains(h.output.String(), "refreshed-access") {
				t.Errorf("expected new access token, got %q", h.output.String())
			}
		})

		t.Run("stores rotated refresh token", func(t *testing.T) {
			h := newHarness(t, "", nil)
			h.store.Token = "stored"
			h.manager.RefreshedToken = tu.NewToken("refreshed-access", "rotated")

			if err := h.run("auth", "refresh"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if h.store.Token != "rotated" {
				t.Errorf("expected rotated token to be stored, got %q", h.store.Token)
			}
		})

		t.Run("not logged in", func(t *testing.T) {
			h := newHarness(t, "", nil)

			if err := h.run("auth", "refresh"); !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	})

	t.Run("url", func(t *testing.T) {
		h := newHarness(t, "", nil)

		if err := h.run("auth", "url", "--state", "abc", "--show-dialog", "--scope", "a b"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		u, err := url.Parse(strings.TrimSpace(h.output.String()))
		if err != nil {
			t.Fatalf("expected URL output, got %q", h.output.String())
		}
		q := u.Query()
		if q.Get("state") != "abc" || q.Get("show_dialog") != "true" || q.Get("scope") != "a b" {
			t.Errorf("unexpected query %v", q)
		}
	})

	t.Run("logout", func(t *testing.T) {
		h := newHarness(t, "", nil)
		h.store.Token = "stored"

		if err := h.run("auth", "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if h.store.Token != "" {
			t.Errorf("expected token to be cleared, got %q", h.store.Token)
		}

		t.Run("read-only store", func(t *testing.T) {
			h := newHarness(t, "", nil)
			h.store.ReadOnly = true

			if err := h.run("auth", "logout"); !errors.Is(err, shared.ErrReadOnlyStore) {
				t.Errorf("expected ErrReadOnlyStore, got %v", err)
			}
		})
	})
}

func TestSpotifyCommands(t *testing.T) {
	routes := map[string]string{
		"/artists/a1":            `{"id":"a1","name":"Band of Horses","genres":["indie folk"],"followers":{"href":null,"total":306565},"popularity":59,"external_urls":{"spotify":"https://open.spotify.com/artist/a1"}}`,
		"/artists/a1/top-tracks": `{"tracks":[{"id":"t1","name":"The Funeral","duration_ms":322000,"album":{"name":"Everything All the Time"}}]}`,
		"/me":                    `{"id":"u1","display_name":"Listener","email":"l@example.com","product":"premium","followers":{"href":null,"total":3}}`,
		"/me/playlists":          `{"items":[{"id":"p1","name":"Mix","owner":{"id":"u1"},"tracks":{"total":12}},{"id":"p2","name":"Chill","owner":{"id":"u1"},"tracks":{"total":4}}],"limit":50,"offset":0,"total":2,"next":null}`,
	}

	t.Run("artist get", func(t *testing.T) {
		h := newHarness(t, "", routes)

		if err := h.run("artist", "get", "a1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := h.output.String()
		for _, want := range []string{"Band of Horses", "Followers: 306565", "Genres: indie folk", "URL: https://open.spotify.com/artist/a1"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output, got %q", want, out)
			}
		}

		t.Run("missing id", func(t *testing.T) {
			if err := newHarness(t, "", routes).run("artist", "get"); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("unknown artist", func(t *testing.T) {
			if err := newHarness(t, "", routes).run("artist", "get", "nope"); !errors.Is(err, shared.ErrArtistNotFound) {
				t.Errorf("expected ErrArtistNotFound, got %v", err)
			}
		})
	})

	t.Run("artist top-tracks", func(t *testing.T) {
		h := newHarness(t, "", routes)

		if err := h.run("artist", "top-tracks", "a1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(h.output.String(), "The Funeral (5:22)") {
			t.Errorf("expected track with duration, got %q", h.output.String())
		}

		h = newHarness(t, "", routes)
		if err := h.run("artist", "top-tracks", "--json", "--pretty=false", "a1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(h.output.String(), "[{") {
			t.Errorf("expected compact JSON array, got %q", h.output.String())
		}
	})

	t.Run("me", func(t *testing.T) {
		h := newHarness(t, "", routes)
		h.store.Token = "stored"

		if err := h.run("me"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(h.output.String(), "Listener") || !strings.Contains(h.output.String(), "Product: premium") {
			t.Errorf("unexpected output %q", h.output.String())
		}

		t.Run("not logged in", func(t *testing.T) {
			if err := newHarness(t, "", routes).run("me"); !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	})

	t.Run("playlists", func(t *testing.T) {
		h := newHarness(t, "", routes)
		h.store.Token = "stored"

		if err := h.run("playlists", "--limit", "1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		out := h.output.String()
		if !strings.Contains(out, "Found 1 playlists") || !strings.Contains(out, "Mix") || strings.Contains(out, "Chill") {
			t.Errorf("expected limited playlist output, got %q", out)
		}
		if !strings.Contains(out, "Tracks: 12") {
			t.Errorf("expected track count, got %q", out)
		}
	})
}

func TestPlaylistExport(t *testing.T) {
	routes := map[string]string{
		"/playlists/p1": `{"id":"p1","name":"Mix","owner":{"id":"u1"},"tracks":{"items":[{"track":{"id":"t1","name":"The Funeral","duration_ms":322000,"artists":[{"name":"Band of Horses"}]}}],"total":1,"next":null}}`,
	}

	t.Run("to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mix.csv")
		h := newHarness(t, "", routes)
		h.store.Token = "stored"

		if err := h.run("playlists", "export", "--format", "csv", "--output", path, "p1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tu.MustReadFile(t, path), "t1,The Funeral,Band of Horses") {
			t.Errorf("expected track row in CSV, got %q", tu.MustReadFile(t, path))
		}
		if !strings.Contains(h.output.String(), "Playlist exported to "+path) {
			t.Errorf("unexpected output %q", h.output.String())
		}
	})

	t.Run("to stdout", func(t *testing.T) {
		h := newHarness(t, "", routes)
		h.store.Token = "stored"

		if err := h.run("playlists", "export", "--format", "md", "--stdout", "p1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(h.output.String(), "1. Band of Horses - The Funeral [5:22]") {
			t.Errorf("unexpected markdown %q", h.output.String())
		}
	})

	t.Run("unknown playlist", func(t *testing.T) {
		h := newHarness(t, "", routes)
		h.store.Token = "stored"

		if err := h.run("playlists", "export", "--stdout", "nope"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		h := newHarness(t, "", nil)

		if err := h.run("--config", path, "setup", "config"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, path)
		if !strings.Contains(tu.MustReadFile(t, path), "[credentials.spotify]") {
			t.Error("expected example config to be written")
		}

		if err := h.run("--config", path, "setup", "config"); err == nil {
			t.Error("expected error when config already exists")
		}
	})

	t.Run("database", func(t *testing.T) {
		h := newHarness(t, "", nil)
		h.config.Database.Path = filepath.Join(t.TempDir(), "spx.db")

		if err := h.run("setup", "database"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, h.config.Database.Path)

		if err := h.run("setup", "database", "--rollback"); err != nil {
			t.Fatalf("expected rollback to succeed, got %v", err)
		}
		if !strings.Contains(h.output.String(), "Rolled back") {
			t.Errorf("expected rollback message, got %q", h.output.String())
		}
	})
}
