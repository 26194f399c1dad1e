package model

// Artist holds the fields common to every artist object.
type Artist struct {
	Item
	ExternalURLs ExternalURLs `json:"external_urls"`
	Name         string       `json:"name"`
}

// SimpleArtist is the artist object nested in albums and tracks.
type SimpleArtist struct {
	Artist
}

// FullArtist is the artist object returned by the artist endpoints.
type FullArtist struct {
	Artist
	Followers  Followers `json:"followers"`
	Genres     []string  `json:"genres"`
	Images     []Image   `json:"images"`
	Popularity int       `json:"popularity"`
}
