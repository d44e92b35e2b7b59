// Package models contains data structures for the application's domain models.
package models

import "time"

// Role identifies what a session is allowed to do.
type Role string

const (
	// RoleModerator grants publish, delete, and resolve rights on any reply.
	RoleModerator Role = "moderator"
	// RoleMember is the default role for signed-in community users.
	RoleMember Role = "member"
)

// Team represents a company team a profile can belong to.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile represents a community author identity. A profile may belong to
// zero or more teams; membership in any team marks the author as staff.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:120" json:"first_name"`
	Pronouns  *string   `gorm:"size:40" json:"pronouns,omitempty"`
	AvatarKey string    `gorm:"size:255" json:"avatar_key"`
	Teams     []Team    `gorm:"many2many:profile_teams" json:"teams,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the profile's first name, falling back to "Anonymous"
// when the profile never set one.
func (p *Profile) DisplayName() string {
	if p == nil || p.FirstName == "" {
		return "Anonymous"
	}
	return p.FirstName
}

// IsTeamMember reports whether the profile belongs to at least one team.
func (p *Profile) IsTeamMember() bool {
	return p != nil && len(p.Teams) > 0
}

// Session is the authenticated caller's identity for a single request.
// It is derived from the bearer token, never persisted.
type Session struct {
	Profile *Profile
	Role    Role
}

// IsModerator reports whether the session carries the moderator role.
func (s *Session) IsModerator() bool {
	return s != nil && s.Role == RoleModerator
}

// ProfileID returns the session's profile id, or 0 when anonymous.
func (s *Session) ProfileID() uint {
	if s == nil || s.Profile == nil {
		return 0
	}
	return s.Profile.ID
}
