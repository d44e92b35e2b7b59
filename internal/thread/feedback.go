package thread

import (
	"context"
	"log/slog"

	"quorum/internal/analytics"
	"quorum/internal/models"
)

// SyncStatus tracks whether the locally recorded verdict reached the content
// store. A failed sync is observable here and reconciled by the next refresh;
// the local verdict is never rolled back.
type SyncStatus string

const (
	// SyncPending means no persistence attempt has completed yet.
	SyncPending SyncStatus = "pending"
	// SyncSynced means the verdict was persisted remotely.
	SyncSynced SyncStatus = "synced"
	// SyncFailed means persistence failed; local and remote state diverge
	// until the next refresh.
	SyncFailed SyncStatus = "failed"
)

// FeedbackView names the three display states of the feedback prompt.
type FeedbackView string

const (
	// FeedbackPrompt shows the neutral prompt with the two judgment controls.
	FeedbackPrompt FeedbackView = "prompt"
	// FeedbackThanks acknowledges a helpful judgment.
	FeedbackThanks FeedbackView = "thanks"
	// FeedbackRouted acknowledges an unhelpful judgment: the question has
	// been routed to the community for human follow-up.
	FeedbackRouted FeedbackView = "routed"
)

// FeedbackState is the local record of a judgment and its sync status.
type FeedbackState struct {
	Verdict models.HelpfulVerdict
	Sync    SyncStatus
}

// Feedback captures a helpful/not-helpful judgment on an AI-generated reply.
// The judgment is applied optimistically, then persisted and folded into the
// resolution workflow on a best-effort basis.
type Feedback struct {
	replyID    uint
	state      FeedbackState
	api        ContentAPI
	sink       analytics.Sink
	discussion Discussion
	logger     *slog.Logger
}

// NewFeedback binds the feedback workflow to an AI-authored reply. Returns
// nil when the reply was not written by the configured AI profile; the
// workflow never activates for human replies. A verdict already present on
// the reply seeds the state as synced, so the prompt stays gone.
func NewFeedback(reply *models.Reply, aiProfileID uint, api ContentAPI, sink analytics.Sink, discussion Discussion, logger *slog.Logger) *Feedback {
	if reply == nil || aiProfileID == 0 || !reply.AuthoredBy(aiProfileID) {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	state := FeedbackState{Verdict: reply.Verdict(), Sync: SyncPending}
	if state.Verdict != models.VerdictUnknown {
		state.Sync = SyncSynced
	}
	return &Feedback{
		replyID:    reply.ID,
		state:      state,
		api:        api,
		sink:       sink,
		discussion: discussion,
		logger:     logger,
	}
}

// Active reports whether the judgment prompt is still showing. Once a verdict
// is recorded the prompt disappears for good within this binding's lifetime.
func (f *Feedback) Active() bool {
	return f.state.Verdict == models.VerdictUnknown
}

// State returns the local verdict record.
func (f *Feedback) State() FeedbackState {
	return f.state
}

// View returns the current display state.
func (f *Feedback) View() FeedbackView {
	switch f.state.Verdict {
	case models.VerdictHelpful:
		return FeedbackThanks
	case models.VerdictUnhelpful:
		return FeedbackRouted
	default:
		return FeedbackPrompt
	}
}

// RecordHelpful records the judgment. The local verdict flips before any
// remote call completes and is never rolled back; analytics capture,
// persistence, resolution, and refresh then run in order, each one's failure
// logged and swallowed without blocking the steps after it. A divergence
// between local and remote state is accepted and reconciled on the next
// refresh.
func (f *Feedback) RecordHelpful(ctx context.Context, helpful bool) {
	if !f.Active() {
		return
	}

	verdict := models.VerdictUnhelpful
	if helpful {
		verdict = models.VerdictHelpful
	}
	f.state = FeedbackState{Verdict: verdict, Sync: SyncPending}

	if err := f.sink.Capture(ctx, analytics.EventAIReplyFeedback, map[string]interface{}{
		"replyID": f.replyID,
		"helpful": helpful,
	}); err != nil {
		f.logger.ErrorContext(ctx, "feedback analytics capture failed",
			slog.Uint64("reply_id", uint64(f.replyID)),
			slog.String("error", err.Error()),
		)
	}

	if err := f.api.UpdateReply(ctx, f.replyID, map[string]interface{}{
		"helpful": helpful,
	}); err != nil {
		f.state.Sync = SyncFailed
		f.logger.ErrorContext(ctx, "feedback persistence failed",
			slog.Uint64("reply_id", uint64(f.replyID)),
			slog.String("error", err.Error()),
		)
	} else {
		f.state.Sync = SyncSynced
	}

	id := f.replyID
	if err := f.discussion.Resolve(ctx, helpful, &id); err != nil {
		f.logger.ErrorContext(ctx, "feedback resolution failed",
			slog.Uint64("reply_id", uint64(f.replyID)),
			slog.String("error", err.Error()),
		)
	}

	f.discussion.Refresh()
}
