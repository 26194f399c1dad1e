package model

import "time"

// Track holds the fields common to every track object.
type Track struct {
	Item
	Artists          []SimpleArtist `json:"artists"`
	AvailableMarkets []string       `json:"available_markets"`
	DiscNumber       int            `json:"disc_number"`
	DurationMS       int            `json:"duration_ms"`
	Explicit         bool           `json:"explicit"`
	ExternalURLs     ExternalURLs   `json:"external_urls"`
	IsLocal          bool           `json:"is_local"`
	IsPlayable       *bool          `json:"is_playable,omitempty"`
	Name             string         `json:"name"`
	PreviewURL       *string        `json:"preview_url"`
	TrackNumber      int            `json:"track_number"`
	Restrictions     *Restrictions  `json:"restrictions,omitempty"`
}

// Duration returns the track length.
func (t *Track) Duration() time.Duration {
	return time.Duration(t.DurationMS) * time.Millisecond
}

// SimpleTrack is the track object nested in albums.
type SimpleTrack struct {
	Track
}

// FullTrack is the track object returned by the track endpoints.
type FullTrack struct {
	Track
	Album       SimpleAlbum `json:"album"`
	ExternalIDs ExternalIDs `json:"external_ids"`
	Popularity  int         `json:"popularity"`
}

// ISRC returns the International Standard Recording Code, if known.
func (t *FullTrack) ISRC() string {
	return t.ExternalIDs["isrc"]
}

// SavedTrack is a track in the user's library.
type SavedTrack struct {
	AddedAt time.Time `json:"added_at"`
	Track   FullTrack `json:"track"`
}
