package webapi

import (
	"context"
	"net/url"
	"strings"

	"github.com/desertthunder/spx/internal/shared"
	"github.com/desertthunder/spx/model"
)

// DefaultMarket is used for endpoints that require a market when none is given.
const DefaultMarket = "US"

// Artist retrieves an artist by ID.
func (c *Client) Artist(ctx context.Context, id string) (*model.FullArtist, error) {
	var artist model.FullArtist
	if err := c.doRequest(ctx, "/artists/"+url.PathEscape(id), nil, &artist); err != nil {
		return nil, notFound(err, shared.ErrArtistNotFound, id)
	}
	return &artist, nil
}

// Artists retrieves up to 50 artists. Unknown IDs are skipped.
func (c *Client) Artists(ctx context.Context, ids ...string) ([]model.FullArtist, error) {
	if err := validateIDs(ids); err != nil {
		return nil, err
	}

	var response struct {
		Artists []*model.FullArtist `json:"artists"`
	}
	if err := c.doRequest(ctx, "/artists", url.Values{"ids": {strings.Join(ids, ",")}}, &response); err != nil {
		return nil, err
	}

	artists := make([]model.FullArtist, 0, len(response.Artists))
	for _, a := range response.Artists {
		if a != nil {
			artists = append(artists, *a)
		}
	}
	return artists, nil
}

// ArtistTopTracks retrieves an artist's most popular tracks in market.
func (c *Client) ArtistTopTracks(ctx context.Context, id, market string) ([]model.FullTrack, error) {
	if market == "" {
		market = DefaultMarket
	}

	var response struct {
		Tracks []model.FullTrack `json:"tracks"`
	}
	endpoint := "/artists/" + url.PathEscape(id) + "/top-tracks"
	if err := c.doRequest(ctx, endpoint, url.Values{"market": {market}}, &response); err != nil {
		return nil, notFound(err, shared.ErrArtistNotFound, id)
	}
	return response.Tracks, nil
}

// Track retrieves a single track by ID.
func (c *Client) Track(ctx context.Context, id string) (*model.FullTrack, error) {
	var track model.FullTrack
	if err := c.doRequest(ctx, "/tracks/"+url.PathEscape(id), nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}

// CurrentUser retrieves the profile of the user the token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*model.PrivateUser, error) {
	var user model.PrivateUser
	if err := c.doRequest(ctx, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Playlist retrieves a playlist with its first page of tracks.
func (c *Client) Playlist(ctx context.Context, id string) (*model.FullPlaylist, error) {
	var playlist model.FullPlaylist
	if err := c.doRequest(ctx, "/playlists/"+url.PathEscape(id), nil, &playlist); err != nil {
		return nil, notFound(err, shared.ErrPlaylistNotFound, id)
	}
	return &playlist, nil
}

// PlaylistItems retrieves one page of a playlist's tracks. limit is clamped to 1..50.
func (c *Client) PlaylistItems(ctx context.Context, id string, limit, offset int) (*model.Paging[model.PlaylistTrack], error) {
	var page model.Paging[model.PlaylistTrack]
	endpoint := "/playlists/" + url.PathEscape(id) + "/tracks"
	if err := c.doRequest(ctx, endpoint, pageQuery(limit, offset), &page); err != nil {
		return nil, notFound(err, shared.ErrPlaylistNotFound, id)
	}
	return &page, nil
}

// PlaylistWithTracks retrieves a playlist and follows its track pages until all are loaded.
func (c *Client) PlaylistWithTracks(ctx context.Context, id string) (*model.FullPlaylist, error) {
	playlist, err := c.Playlist(ctx, id)
	if err != nil {
		return nil, err
	}

	tracks := &playlist.Tracks
	for tracks.HasNext() {
		page, err := c.PlaylistItems(ctx, id, maxPageLimit, len(tracks.Items))
		if err != nil {
			return nil, err
		}
		if len(page.Items) == 0 {
			break
		}
		tracks.Items = append(tracks.Items, page.Items...)
		tracks.Next = page.Next
	}

	return playlist, nil
}

// CurrentUserPlaylists retrieves one page of the current user's playlists.
// limit is clamped to 1..50 and defaults to 20.
func (c *Client) CurrentUserPlaylists(ctx context.Context, limit, offset int) (*model.Paging[model.SimplePlaylist], error) {
	var page model.Paging[model.SimplePlaylist]
	if err := c.doRequest(ctx, "/me/playlists", pageQuery(limit, offset), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AllCurrentUserPlaylists follows the pages of the current user's playlists.
func (c *Client) AllCurrentUserPlaylists(ctx context.Context) ([]model.SimplePlaylist, error) {
	var playlists []model.SimplePlaylist
	offset := 0

	for {
		page, err := c.CurrentUserPlaylists(ctx, maxPageLimit, offset)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, page.Items...)

		if !page.HasNext() || len(page.Items) == 0 {
			break
		}
		offset += len(page.Items)
	}

	return playlists, nil
}
