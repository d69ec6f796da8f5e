package models

import "strings"

// Role is the application-level role stored on a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity resolved from a BaaS access token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Profile is the application user record kept next to the auth identity.
type Profile struct {
	ID        string  `db:"id" json:"id"`
	Role      Role    `db:"role" json:"role"`
	Username  *string `db:"username" json:"username,omitempty"`
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  string  `db:"last_name" json:"last_name"`
	AvatarURL string  `db:"avatar_url" json:"avatar_url"`
}

// IsComplete reports whether onboarding is finished, i.e. a username is set.
// A nil profile is never complete.
func (p *Profile) IsComplete() bool {
	return p != nil && p.Username != nil && *p.Username != ""
}

// IsAdmin is nil-safe.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// DisplayName joins first and last name.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	return FullName(p.FirstName, p.LastName)
}

// FullName joins name parts, dropping empty ones.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// ProfileUpdate carries the fields collected by the onboarding flow.
type ProfileUpdate struct {
	Username  string `json:"username" binding:"required,min=3,max=32"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}
