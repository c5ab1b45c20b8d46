package models

import (
	"encoding/json"
	"time"
)

// Identity is the account record owned by the authentication provider.
type Identity struct {
	ID               string          `json:"id"`
	Aud              string          `json:"aud,omitempty"`
	Role             string          `json:"role,omitempty"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone,omitempty"`
	EmailConfirmedAt *time.Time      `json:"email_confirmed_at,omitempty"`
	LastSignInAt     *time.Time      `json:"last_sign_in_at,omitempty"`
	CreatedAt        *time.Time      `json:"created_at,omitempty"`
	UpdatedAt        *time.Time      `json:"updated_at,omitempty"`
	AppMetadata      map[string]any  `json:"app_metadata,omitempty"`
	UserMetadata     map[string]any  `json:"user_metadata,omitempty"`
	Identities       json.RawMessage `json:"identities,omitempty"`
}

// UserProfile is the locally owned row keyed by Identity.ID.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// ProfileChanges holds the mutable columns of a UserProfile. Nil fields are
// left untouched.
type ProfileChanges struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// Empty reports whether no column is set.
func (c ProfileChanges) Empty() bool {
	return c.Name == nil && c.Phone == nil && c.Role == nil
}

// Session is the provider's answer to a successful password grant.
type Session struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	ExpiresAt    int64    `json:"expires_at"`
	RefreshToken string   `json:"refresh_token"`
	User         Identity `json:"user"`
}

// Profile is the flat view merging an Identity with its UserProfile.
type Profile struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	Role             string          `json:"role"`
	Aud              string          `json:"aud,omitempty"`
	CreatedAt        *time.Time      `json:"created_at,omitempty"`
	UpdatedAt        *time.Time      `json:"updated_at,omitempty"`
	LastSignInAt     *time.Time      `json:"last_sign_in_at,omitempty"`
	EmailConfirmedAt *time.Time      `json:"email_confirmed_at,omitempty"`
	AppMetadata      map[string]any  `json:"app_metadata,omitempty"`
	UserMetadata     map[string]any  `json:"user_metadata,omitempty"`
	Identities       json.RawMessage `json:"identities,omitempty"`
}
