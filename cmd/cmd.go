// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func scopeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "scope",
		Aliases: []string{"s"},
		Usage:   "Space separated scopes (defaults to the configured scope)",
	}
}

// setupCommand creates the configuration file and token database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create configuration and token storage",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example config.toml",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the token database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles the OAuth2 flows
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Obtain and manage Spotify tokens",
		Commands: []*cli.Command{
			{
				Name:   "client",
				Usage:  "Request a token with the client credentials flow",
				Flags:  outputFlags(),
				Action: r.AuthClient,
			},
			{
				Name:  "login",
				Usage: "Log in with the authorization code flow and store the refresh token",
				Flags: []cli.Flag{
					scopeFlag(),
					&cli.BoolFlag{
						Name:    "listen",
						Aliases: []string{"l"},
						Usage:   "Receive the redirect on a local server instead of pasting it",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long --listen waits for the redirect",
						Value: 2 * time.Minute,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "refresh",
				Usage:  "Exchange the stored refresh token for a new access token",
				Flags:  outputFlags(),
				Action: r.AuthRefresh,
			},
			{
				Name:  "url",
				Usage: "Print an authorisation URL",
				Flags: []cli.Flag{
					scopeFlag(),
					&cli.StringFlag{
						Name:  "state",
						Usage: "State parameter (random when empty)",
					},
					&cli.BoolFlag{
						Name:  "show-dialog",
						Usage: "Force the login dialog even if already approved",
					},
				},
				Action: r.AuthURL,
			},
			{
				Name:   "logout",
				Usage:  "Remove the stored refresh token",
				Action: r.AuthLogout,
			},
		},
	}
}

// artistCommand reads artists with a client credentials token
func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artist",
		Usage: "Artist lookups",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Show an artist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  outputFlags(),
				Action: r.ArtistGet,
			},
			{
				Name:  "top-tracks",
				Usage: "Show an artist's top tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: append(outputFlags(), &cli.StringFlag{
					Name:  "market",
					Usage: "ISO 3166-1 alpha-2 country code",
					Value: "US",
				}),
				Action: r.ArtistTopTracks,
			},
		},
	}
}

// meCommand shows the logged in user
func meCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "me",
		Usage:  "Show the logged in user's profile",
		Flags:  outputFlags(),
		Action: r.Me,
	}
}

// playlistsCommand lists the logged in user's playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "playlists",
		Usage: "List the logged in user's playlists",
		Flags: append(outputFlags(), &cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of playlists to show",
			Value: 50,
		}),
		Action: r.Playlists,
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Export a playlist with all of its tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "csv, md, txt or json",
						Value:   "txt",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (defaults to <id>.<format>)",
					},
					&cli.BoolFlag{
						Name:  "stdout",
						Usage: "Write the export to standard output instead of a file",
					},
				},
				Action: r.PlaylistExport,
			},
		},
	}
}
