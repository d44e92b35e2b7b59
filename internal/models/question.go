package models

import (
	"time"

	"gorm.io/gorm"
)

// Question represents a community question thread.
type Question struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Subject   string   `gorm:"size:255;not null" json:"subject"`
	Body      string   `gorm:"type:text;not null" json:"body"`
	ProfileID *uint    `gorm:"index" json:"profile_id,omitempty"`
	Profile   *Profile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	// ResolvedByID points at the reply deemed the accepted solution.
	// The marker lives on the question, not the reply.
	ResolvedByID *uint          `gorm:"index" json:"resolved_by_id,omitempty"`
	ResolvedBy   *Reply         `gorm:"foreignKey:ResolvedByID" json:"resolved_by,omitempty"`
	Topics       []Topic        `gorm:"many2many:question_topics" json:"topics,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Resolved reports whether the question has an accepted solution.
func (q *Question) Resolved() bool {
	return q != nil && q.ResolvedByID != nil
}

// HasPrivateTopic reports whether any of the question's topics carries the
// private marker prefix.
func (q *Question) HasPrivateTopic() bool {
	if q == nil {
		return false
	}
	for i := range q.Topics {
		if q.Topics[i].IsPrivate() {
			return true
		}
	}
	return false
}
