// Package analytics provides product analytics event capture.
package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventAIReplyFeedback is captured when a reader judges an AI-generated reply.
const EventAIReplyFeedback = "community ai reply"

// Sink captures named events with arbitrary properties. Implementations must
// not block gesture handling on delivery; failures are the caller's to log
// and swallow.
type Sink interface {
	Capture(ctx context.Context, event string, properties map[string]interface{}) error
}

// Event is the wire shape published to the analytics channel.
type Event struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	CapturedAt time.Time              `json:"captured_at"`
}

// RedisSink publishes analytics events to a Redis channel where a downstream
// consumer forwards them to the analytics warehouse.
type RedisSink struct {
	rdb     *redis.Client
	channel string
}

// NewRedisSink creates a RedisSink publishing to the given channel.
// An empty channel falls back to "analytics:events".
func NewRedisSink(rdb *redis.Client, channel string) *RedisSink {
	if channel == "" {
		channel = "analytics:events"
	}
	return &RedisSink{rdb: rdb, channel: channel}
}

// Capture publishes the event. A nil Redis client is a no-op so the
// application degrades gracefully when the cache is unavailable.
func (s *RedisSink) Capture(ctx context.Context, event string, properties map[string]interface{}) error {
	if s.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		Name:       event,
		Properties: properties,
		CapturedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, s.channel, payload).Err()
}

// NopSink discards all events. Used in tests and when analytics is disabled.
type NopSink struct{}

// Capture implements Sink.
func (NopSink) Capture(context.Context, string, map[string]interface{}) error { return nil }
