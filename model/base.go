package model

// Item holds the identifiers shared by every addressable resource.
type Item struct {
	ID   string `json:"id"`
	Href string `json:"href"`
	Type string `json:"type"`
	URI  string `json:"uri"`
}

// ExternalURLs maps an external service to the resource's URL there, usually "spotify".
type ExternalURLs map[string]string

// ExternalIDs maps an identifier kind ("isrc", "ean", "upc") to its value.
type ExternalIDs map[string]string

// Followers describes the follower count of an artist, playlist or user.
type Followers struct {
	Href  *string `json:"href"`
	Total int     `json:"total"`
}

// Image is a cover art or profile image. Dimensions are unknown for some images.
type Image struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

// Restrictions explains why a resource is unavailable, e.g. "market".
type Restrictions struct {
	Reason string `json:"reason"`
}

// Copyright is an album copyright notice.
type Copyright struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Paging is a page of results from an endpoint that supports offsets.
type Paging[T any] struct {
	Href     string  `json:"href"`
	Items    []T     `json:"items"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
	Total    int     `json:"total"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// HasNext reports whether another page follows.
func (p *Paging[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

// Error is the error object the API returns with non-2xx responses.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
