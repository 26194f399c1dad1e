package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spx/internal/formatter"
	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/model"
	"github.com/urfave/cli/v3"
)

func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: <%s>", shared.ErrMissingArgument, name)
	}
	return v, nil
}

// ArtistGet prints an artist. Artist reads use a client credentials token.
func (r *Runner) ArtistGet(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	token, err := r.clientToken(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("fetching artist", "id", id)

	artist, err := r.apiClient(token).Artist(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(artist, cmd.Bool("pretty"))
	}

	r.writeLine(r.palette.Title(artist.Name))
	r.writeLine(r.palette.Field("ID", artist.ID))
	r.writeLine(r.palette.Field("Followers", artist.Followers.Total))
	r.writeLine(r.palette.Field("Popularity", artist.Popularity))
	if len(artist.Genres) > 0 {
		r.writeLine(r.palette.Field("Genres", strings.Join(artist.Genres, ", ")))
	}
	if u := artist.ExternalURLs["spotify"]; u != "" {
		r.writeLine(r.palette.Field("URL", u))
	}
	return nil
}

// ArtistTopTracks prints an artist's most popular tracks.
func (r *Runner) ArtistTopTracks(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	token, err := r.clientToken(ctx)
	if err != nil {
		return err
	}

	tracks, err := r.apiClient(token).ArtistTopTracks(ctx, id, cmd.String("market"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	for i, track := range tracks {
		r.writePlain("%2d. %s (%s)\n", i+1, track.Name, formatDuration(&track.Track))
		if track.Album.Name != "" {
			r.writePlain("    %s\n", r.palette.Field("Album", track.Album.Name))
		}
	}
	return nil
}

// Me prints the profile of the logged in user.
func (r *Runner) Me(ctx context.Context, cmd *cli.Command) error {
	token, err := r.userToken(ctx)
	if err != nil {
		return err
	}

	user, err := r.apiClient(token).CurrentUser(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	r.writeLine(r.palette.Title(user.Name()))
	r.writeLine(r.palette.Field("ID", user.ID))
	if user.Email != "" {
		r.writeLine(r.palette.Field("Email", user.Email))
	}
	if user.Country != "" {
		r.writeLine(r.palette.Field("Country", user.Country))
	}
	if user.Product != "" {
		r.writeLine(r.palette.Field("Product", user.Product))
	}
	if user.Followers != nil {
		r.writeLine(r.palette.Field("Followers", user.Followers.Total))
	}
	return nil
}

// Playlists lists the logged in user's playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))

	token, err := r.userToken(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("listing playlists", "limit", limit)

	playlists, err := r.apiClient(token).AllCurrentUserPlaylists(ctx)
	if err != nil {
		return err
	}

	if limit > 0 && limit < len(playlists) {
		playlists = playlists[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		r.writePlain("   %s\n", r.palette.Field("ID", p.ID))
		r.writePlain("   %s\n", r.palette.Field("Tracks", p.Tracks.Total))
		r.writePlain("   %s\n", r.palette.Field("Owner", p.Owner.Name()))
	}
	return nil
}

// PlaylistExport writes a playlist with all of its tracks to a file, or to the output with --stdout.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	format := cmd.String("format")

	token, err := r.userToken(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("exporting playlist", "id", id, "format", format)

	playlist, err := r.apiClient(token).PlaylistWithTracks(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("stdout") {
		data, err := formatter.Render(playlist, format)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	path, err := formatter.WriteFile(playlist, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Infof("playlist exported to %v with %v tracks", path, len(playlist.Tracks.Items))
	r.writeLine(r.palette.OK("Playlist exported to " + path))
	r.writeLine(r.palette.Field("Playlist", playlist.Name))
	r.writeLine(r.palette.Field("Tracks", len(playlist.Tracks.Items)))
	return nil
}

func formatDuration(t *model.Track) string {
	return formatter.Duration(t.Duration())
}
