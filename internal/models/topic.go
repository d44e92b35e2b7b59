package models

import (
	"strings"
	"time"
)

// PrivateTopicMarker is the label prefix that marks a topic as internal-only.
// Questions tagged with a private topic cannot be resolved from the community
// surface.
const PrivateTopicMarker = "#"

// Topic represents a label a question can be filed under.
type Topic struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"size:120;not null;uniqueIndex" json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// IsPrivate reports whether the topic label carries the private marker prefix.
func (t *Topic) IsPrivate() bool {
	return strings.HasPrefix(t.Label, PrivateTopicMarker)
}
