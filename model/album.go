package model

// Album holds the fields common to every album object.
type Album struct {
	Item
	AlbumType            string         `json:"album_type"`
	Artists              []SimpleArtist `json:"artists"`
	AvailableMarkets     []string       `json:"available_markets"`
	ExternalURLs         ExternalURLs   `json:"external_urls"`
	Images               []Image        `json:"images"`
	Name                 string         `json:"name"`
	ReleaseDate          string         `json:"release_date"`
	ReleaseDatePrecision string         `json:"release_date_precision"`
	TotalTracks          int            `json:"total_tracks"`
	Restrictions         *Restrictions  `json:"restrictions,omitempty"`
}

// SimpleAlbum is the album object nested in tracks and artist album listings.
type SimpleAlbum struct {
	Album
	AlbumGroup string `json:"album_group,omitempty"` // only in artist album listings
}

// FullAlbum is the album object returned by the album endpoints.
type FullAlbum struct {
	Album
	Copyrights  []Copyright         `json:"copyrights"`
	ExternalIDs ExternalIDs         `json:"external_ids"`
	Genres      []string            `json:"genres"`
	Label       string              `json:"label"`
	Popularity  int                 `json:"popularity"`
	Tracks      Paging[SimpleTrack] `json:"tracks"`
}
