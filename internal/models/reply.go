package models

import (
	"time"

	"gorm.io/gorm"
)

// HelpfulVerdict is the human judgment recorded against an AI-generated reply.
// The zero state is "not yet judged", distinct from a negative judgment.
type HelpfulVerdict string

const (
	// VerdictUnknown means no judgment has been recorded yet.
	VerdictUnknown HelpfulVerdict = "unknown"
	// VerdictHelpful means the reader confirmed the answer solved their question.
	VerdictHelpful HelpfulVerdict = "helpful"
	// VerdictUnhelpful means the reader asked for human follow-up instead.
	VerdictUnhelpful HelpfulVerdict = "unhelpful"
)

// VerdictFromBool maps the wire-level nullable boolean onto the explicit
// tri-state verdict.
func VerdictFromBool(helpful *bool) HelpfulVerdict {
	switch {
	case helpful == nil:
		return VerdictUnknown
	case *helpful:
		return VerdictHelpful
	default:
		return VerdictUnhelpful
	}
}

// Bool returns the wire-level nullable boolean for the verdict.
func (v HelpfulVerdict) Bool() *bool {
	switch v {
	case VerdictHelpful:
		b := true
		return &b
	case VerdictUnhelpful:
		b := false
		return &b
	default:
		return nil
	}
}

// Reply represents a single answer inside a question thread.
type Reply struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Body       string     `gorm:"type:text;not null" json:"body"`
	QuestionID uint       `gorm:"not null;index" json:"question_id"`
	ProfileID  *uint      `gorm:"index" json:"profile_id,omitempty"`
	Profile    *Profile   `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	// PublishedAt is null while the reply is hidden from non-moderators.
	PublishedAt *time.Time `json:"published_at,omitempty"`
	// Helpful is only meaningful for replies authored by the configured AI
	// profile; null means no judgment has been recorded.
	Helpful   *bool          `json:"helpful,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Published reports whether the reply is visible to non-moderators.
func (r *Reply) Published() bool {
	return r != nil && r.PublishedAt != nil
}

// Verdict returns the explicit tri-state helpful judgment.
func (r *Reply) Verdict() HelpfulVerdict {
	if r == nil {
		return VerdictUnknown
	}
	return VerdictFromBool(r.Helpful)
}

// AuthoredBy reports whether the reply was written by the given profile id.
// A reply with no author profile matches nothing.
func (r *Reply) AuthoredBy(profileID uint) bool {
	return r != nil && r.ProfileID != nil && *r.ProfileID == profileID
}
