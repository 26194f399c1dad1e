package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvPrefix prefixes the environment variables read by [ConfigFromEnvironment].
const EnvPrefix = "SPOTIFY_"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Storage     StorageConfig     `toml:"storage"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	API         APIConfig         `toml:"api"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify application credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	Scope        string `toml:"scope"`
	RefreshToken string `toml:"refresh_token"` // only read by the env token store
}

// Validate checks that the client credentials are present.
func (c SpotifyConfig) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("%w: spotify client_id and client_secret must be set", ErrMissingCredentials)
	}
	return nil
}

// StorageConfig selects where the refresh token is kept between runs.
type StorageConfig struct {
	Type           string `toml:"type"` // sqlite, keyring or env
	Name           string `toml:"name"` // key the token is stored under
	KeyringService string `toml:"keyring_service"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the local OAuth callback server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig contains Web API client settings.
type APIConfig struct {
	BaseURL   string  `toml:"base_url"`
	RateLimit float64 `toml:"rate_limit"` // requests per second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes config to path as TOML. The file holds the client secret, so it is only readable by the owner.
func SaveConfig(path string, config *Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// ConfigFromEnvironment reads SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET,
// SPOTIFY_REDIRECT_URI, SPOTIFY_SCOPE and SPOTIFY_REFRESH_TOKEN.
//
// environ defaults to [os.Environ]. Unset variables are left empty.
func ConfigFromEnvironment(environ func() []string) (SpotifyConfig, error) {
	k, err := loadEnv(environ)
	if err != nil {
		return SpotifyConfig{}, err
	}

	return SpotifyConfig{
		ClientID:     k.String("client_id"),
		ClientSecret: k.String("client_secret"),
		RedirectURI:  k.String("redirect_uri"),
		Scope:        k.String("scope"),
		RefreshToken: k.String("refresh_token"),
	}, nil
}

// ApplyEnvironment overrides the Spotify credentials in config with any
// SPOTIFY_* variables that are set.
func ApplyEnvironment(config *Config, environ func() []string) error {
	k, err := loadEnv(environ)
	if err != nil {
		return err
	}

	spotify := &config.Credentials.Spotify
	for key, field := range map[string]*string{
		"client_id":     &spotify.ClientID,
		"client_secret": &spotify.ClientSecret,
		"redirect_uri":  &spotify.RedirectURI,
		"scope":         &spotify.Scope,
		"refresh_token": &spotify.RefreshToken,
	} {
		if k.Exists(key) {
			*field = k.String(key)
		}
	}

	return nil
}

func loadEnv(environ func() []string) (*koanf.Koanf, error) {
	if environ == nil {
		environ = os.Environ
	}

	k := koanf.New(".")
	provider := env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
		EnvironFunc: environ,
	})

	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return k, nil
}
