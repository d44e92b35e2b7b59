// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedbackVerdictsTotal counts recorded AI reply judgments by verdict.
	FeedbackVerdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_feedback_verdicts_total",
		Help: "Total AI reply feedback judgments recorded, by verdict",
	}, []string{"verdict"})

	// ResolutionsTotal counts solution marker changes by action (mark/undo).
	ResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_resolutions_total",
		Help: "Total question resolution changes, by action",
	}, []string{"action"})

	// PublishTogglesTotal counts moderator visibility toggles by action.
	PublishTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_publish_toggles_total",
		Help: "Total reply publish/unpublish toggles, by action",
	}, []string{"action"})

	// ReplyDeletesTotal counts moderator reply deletions.
	ReplyDeletesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quorum_reply_deletes_total",
		Help: "Total replies deleted by moderators",
	})

	// AnalyticsEventsTotal counts analytics captures by event and outcome.
	AnalyticsEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_analytics_events_total",
		Help: "Total analytics events captured, by event name and outcome",
	}, []string{"event", "outcome"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quorum_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
