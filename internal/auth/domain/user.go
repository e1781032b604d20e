package domain

import "time"

type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	FullName       string
	AvatarURL      string
	RoleID         int
	RoleName       string
	IsActive       bool
	IsOAuthUser    bool
	RegistrationIP string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OAuthLink ties an external provider identity to exactly one local user.
// The (Provider, ProviderUserID) pair is unique across all links.
type OAuthLink struct {
	ID             string
	UserID         string
	Provider       string
	ProviderUserID string
	Email          string
	Name           string
	Picture        string
	CreatedAt      time.Time
	LastLoginAt    time.Time
	LastLoginIP    string
}

// OAuthUserInfo is the normalized identity returned by a provider's
// userinfo endpoint. Empty strings mean the provider did not supply the
// field.
type OAuthUserInfo struct {
	Provider       string
	ProviderUserID string
	Email          string
	Name           string
	Picture        string
	Raw            map[string]any
}
