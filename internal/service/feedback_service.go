package service

import (
	"context"
	"log/slog"

	"quorum/internal/analytics"
	"quorum/internal/models"
	"quorum/internal/observability"
	"quorum/internal/repository"
)

// FeedbackService records human judgments on AI-generated replies. The
// judgment itself must land; analytics capture and auto-resolution are
// best-effort and never fail the request.
type FeedbackService struct {
	replyRepo    repository.ReplyRepository
	questionRepo repository.QuestionRepository
	sink         analytics.Sink
	logger       *slog.Logger
	aiProfileID  uint
}

type RecordVerdictInput struct {
	Session *models.Session
	ReplyID uint
	Helpful bool
}

func NewFeedbackService(
	replyRepo repository.ReplyRepository,
	questionRepo repository.QuestionRepository,
	sink analytics.Sink,
	logger *slog.Logger,
	aiProfileID uint,
) *FeedbackService {
	if sink == nil {
		sink = analytics.NopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedbackService{
		replyRepo:    replyRepo,
		questionRepo: questionRepo,
		sink:         sink,
		logger:       logger,
		aiProfileID:  aiProfileID,
	}
}

// RecordVerdict persists a helpful/unhelpful judgment on an AI reply.
// The first judgment wins; later ones conflict. A helpful judgment also
// attempts to accept the reply as the question's solution, best-effort.
func (s *FeedbackService) RecordVerdict(ctx context.Context, in RecordVerdictInput) (*models.Reply, error) {
	if in.Session.ProfileID() == 0 {
		return nil, models.NewUnauthorizedError("Sign in to rate this answer")
	}

	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID)
	if err != nil {
		return nil, notFoundOr("Reply", in.ReplyID, err)
	}
	if !reply.AuthoredBy(s.aiProfileID) {
		return nil, models.NewValidationError("Feedback is only accepted on AI-generated replies")
	}
	if reply.Verdict() != models.VerdictUnknown {
		return nil, models.NewConflictError("This answer has already been rated")
	}

	if err := s.replyRepo.UpdateFields(ctx, in.ReplyID, map[string]interface{}{"helpful": in.Helpful}); err != nil {
		return nil, models.NewInternalError(err)
	}
	verdict := models.VerdictUnhelpful
	if in.Helpful {
		verdict = models.VerdictHelpful
	}
	observability.FeedbackVerdictsTotal.WithLabelValues(string(verdict)).Inc()

	s.capture(ctx, in.ReplyID, in.Helpful)

	if in.Helpful {
		s.tryResolve(ctx, reply)
	}

	return s.replyRepo.GetByID(ctx, in.ReplyID)
}

// capture sends the analytics event. Failures are logged and swallowed; the
// judgment already landed and analytics must not undo that.
func (s *FeedbackService) capture(ctx context.Context, replyID uint, helpful bool) {
	err := s.sink.Capture(ctx, analytics.EventAIReplyFeedback, map[string]interface{}{
		"replyID": replyID,
		"helpful": helpful,
	})
	outcome := "ok"
	if err != nil {
		outcome = "error"
		s.logger.WarnContext(ctx, "analytics capture failed",
			slog.String("event", analytics.EventAIReplyFeedback),
			slog.Uint64("reply_id", uint64(replyID)),
			slog.String("error", err.Error()))
	}
	observability.AnalyticsEventsTotal.WithLabelValues(analytics.EventAIReplyFeedback, outcome).Inc()
}

// tryResolve accepts the reply as the solution if the question is still open.
// Best-effort: a failure here is logged, never surfaced.
func (s *FeedbackService) tryResolve(ctx context.Context, reply *models.Reply) {
	question, err := s.questionRepo.GetByID(ctx, reply.QuestionID)
	if err != nil {
		s.logger.WarnContext(ctx, "auto-resolve skipped: question lookup failed",
			slog.Uint64("question_id", uint64(reply.QuestionID)),
			slog.String("error", err.Error()))
		return
	}
	if question.Resolved() || question.HasPrivateTopic() {
		return
	}
	if err := s.questionRepo.SetResolvedBy(ctx, question.ID, &reply.ID); err != nil {
		s.logger.WarnContext(ctx, "auto-resolve failed",
			slog.Uint64("question_id", uint64(question.ID)),
			slog.Uint64("reply_id", uint64(reply.ID)),
			slog.String("error", err.Error()))
		return
	}
	observability.ResolutionsTotal.WithLabelValues("mark").Inc()
}
