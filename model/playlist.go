package model

import "time"

// Playlist holds the fields common to every playlist object.
type Playlist struct {
	Item
	Collaborative bool         `json:"collaborative"`
	Description   *string      `json:"description"`
	ExternalURLs  ExternalURLs `json:"external_urls"`
	Images        []Image      `json:"images"`
	Name          string       `json:"name"`
	Owner         PublicUser   `json:"owner"`
	Public        *bool        `json:"public"` // null when the playlist's status is not relevant
	SnapshotID    string       `json:"snapshot_id"`
}

// PlaylistTracksRef is the track summary in a simplified playlist.
type PlaylistTracksRef struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// SimplePlaylist is the playlist object returned in playlist listings.
type SimplePlaylist struct {
	Playlist
	Tracks PlaylistTracksRef `json:"tracks"`
}

// FullPlaylist is the playlist object returned by the playlist endpoint.
type FullPlaylist struct {
	Playlist
	Followers Followers             `json:"followers"`
	Tracks    Paging[PlaylistTrack] `json:"tracks"`
}

// PlaylistTrack is a track entry in a playlist. Track is nil for
// entries that are no longer available.
type PlaylistTrack struct {
	AddedAt *time.Time  `json:"added_at"`
	AddedBy *PublicUser `json:"added_by"`
	IsLocal bool        `json:"is_local"`
	Track   *FullTrack  `json:"track"`
}
