package model

// User holds the fields common to every user object.
type User struct {
	Item
	DisplayName  *string      `json:"display_name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Followers    *Followers   `json:"followers,omitempty"`
	Images       []Image      `json:"images,omitempty"`
}

// Name returns the display name, falling back to the user ID.
func (u *User) Name() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	return u.ID
}

// PublicUser is the profile visible to everyone.
type PublicUser struct {
	User
}

// ExplicitContent holds the user's explicit content settings.
type ExplicitContent struct {
	FilterEnabled bool `json:"filter_enabled"`
	FilterLocked  bool `json:"filter_locked"`
}

// PrivateUser is the current user's profile. Country, Email and Product
// require the user-read-private and user-read-email scopes.
type PrivateUser struct {
	User
	Country         string           `json:"country,omitempty"`
	Email           string           `json:"email,omitempty"`
	ExplicitContent *ExplicitContent `json:"explicit_content,omitempty"`
	Product         string           `json:"product,omitempty"` // premium, free, etc.
}
