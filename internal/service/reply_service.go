// Package service contains the business logic for reply interactions.
package service

import (
	"context"
	"errors"
	"time"

	"quorum/internal/models"
	"quorum/internal/observability"
	"quorum/internal/permissions"
	"quorum/internal/repository"

	"gorm.io/gorm"
)

// ReplyService coordinates resolution, publish visibility, deletion, and
// partial reply updates against the content store.
type ReplyService struct {
	replyRepo    repository.ReplyRepository
	questionRepo repository.QuestionRepository
}

type ResolveInput struct {
	Session    *models.Session
	QuestionID uint
	ReplyID    uint
}

type UpdateReplyInput struct {
	Session *models.Session
	ReplyID uint
	// Data carries the partial update from the request body. Only
	// whitelisted fields are applied.
	Data map[string]interface{}
}

func NewReplyService(
	replyRepo repository.ReplyRepository,
	questionRepo repository.QuestionRepository,
) *ReplyService {
	return &ReplyService{
		replyRepo:    replyRepo,
		questionRepo: questionRepo,
	}
}

// ReplyView is a reply decorated with the capability flags and thread badges
// the client renders from.
type ReplyView struct {
	Reply       *models.Reply           `json:"reply"`
	Permissions permissions.Permissions `json:"permissions"`
	IsSolution  bool                    `json:"is_solution"`
	CanUndo     bool                    `json:"can_undo"`
}

// ThreadView is a question with its visible replies.
type ThreadView struct {
	Question *models.Question `json:"question"`
	Replies  []ReplyView      `json:"replies"`
}

// GetThread loads a question thread. Unpublished replies are only included
// for moderators.
func (s *ReplyService) GetThread(ctx context.Context, session *models.Session, questionID uint) (*ThreadView, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, notFoundOr("Question", questionID, err)
	}

	replies, err := s.replyRepo.ListByQuestion(ctx, questionID, session.IsModerator())
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	view := &ThreadView{Question: question, Replies: make([]ReplyView, 0, len(replies))}
	for _, reply := range replies {
		perms := permissions.Evaluate(session, reply, question)
		view.Replies = append(view.Replies, ReplyView{
			Reply:       reply,
			Permissions: perms,
			IsSolution:  question.ResolvedByID != nil && *question.ResolvedByID == reply.ID,
			CanUndo:     permissions.CanUndoResolve(perms, reply, question),
		})
	}
	return view, nil
}

// Resolve marks the reply as the question's accepted solution. Only the
// question author or a moderator may resolve, never on a private-topic
// thread, and never when the question already has a solution.
func (s *ReplyService) Resolve(ctx context.Context, in ResolveInput) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, in.QuestionID)
	if err != nil {
		return nil, notFoundOr("Question", in.QuestionID, err)
	}
	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID)
	if err != nil {
		return nil, notFoundOr("Reply", in.ReplyID, err)
	}
	if reply.QuestionID != in.QuestionID {
		return nil, models.NewValidationError("Reply does not belong to this question")
	}

	if question.Resolved() {
		return nil, models.NewConflictError("Question already has an accepted solution")
	}
	perms := permissions.Evaluate(in.Session, reply, question)
	if !perms.Resolvable {
		return nil, models.NewUnauthorizedError("Only the question author or a moderator can accept a solution")
	}

	if err := s.questionRepo.SetResolvedBy(ctx, in.QuestionID, &in.ReplyID); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.ResolutionsTotal.WithLabelValues("mark").Inc()

	return s.questionRepo.GetByID(ctx, in.QuestionID)
}

// UndoResolve clears the solution marker. Only allowed on the reply that
// currently holds it, and only by the question author or a moderator.
func (s *ReplyService) UndoResolve(ctx context.Context, in ResolveInput) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, in.QuestionID)
	if err != nil {
		return nil, notFoundOr("Question", in.QuestionID, err)
	}
	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID)
	if err != nil {
		return nil, notFoundOr("Reply", in.ReplyID, err)
	}

	perms := permissions.Evaluate(in.Session, reply, question)
	if !permissions.CanUndoResolve(perms, reply, question) {
		return nil, models.NewUnauthorizedError("Only the accepted solution can be un-accepted, by the author or a moderator")
	}

	if err := s.questionRepo.SetResolvedBy(ctx, in.QuestionID, nil); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.ResolutionsTotal.WithLabelValues("undo").Inc()

	return s.questionRepo.GetByID(ctx, in.QuestionID)
}

// TogglePublish flips reply visibility. Moderator only. The new state is
// derived from the stored reply, not from what the caller believes it is, so
// two moderators racing cannot double-publish.
func (s *ReplyService) TogglePublish(ctx context.Context, session *models.Session, replyID uint) (*models.Reply, error) {
	if !session.IsModerator() {
		return nil, models.NewUnauthorizedError("Only moderators can change reply visibility")
	}

	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return nil, notFoundOr("Reply", replyID, err)
	}

	var publishedAt *time.Time
	action := "unpublish"
	if !reply.Published() {
		now := time.Now().UTC()
		publishedAt = &now
		action = "publish"
	}

	if err := s.replyRepo.SetPublishedAt(ctx, replyID, publishedAt); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.PublishTogglesTotal.WithLabelValues(action).Inc()

	return s.replyRepo.GetByID(ctx, replyID)
}

// Delete removes a reply. Moderator only. Deleting the accepted solution
// also clears the question's solution marker.
func (s *ReplyService) Delete(ctx context.Context, session *models.Session, replyID uint) error {
	if !session.IsModerator() {
		return models.NewUnauthorizedError("Only moderators can delete replies")
	}

	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return notFoundOr("Reply", replyID, err)
	}

	question, err := s.questionRepo.GetByID(ctx, reply.QuestionID)
	if err == nil && question.ResolvedByID != nil && *question.ResolvedByID == replyID {
		if err := s.questionRepo.SetResolvedBy(ctx, question.ID, nil); err != nil {
			return models.NewInternalError(err)
		}
	}

	if err := s.replyRepo.Delete(ctx, replyID); err != nil {
		return models.NewInternalError(err)
	}
	observability.ReplyDeletesTotal.Inc()
	return nil
}

// updatableFields is the whitelist for partial reply updates over the wire.
var updatableFields = map[string]bool{
	"helpful": true,
	"body":    true,
}

// UpdateReply applies a partial update to a reply. Body edits are restricted
// to the reply author; the helpful judgment additionally goes through
// FeedbackService, which calls in here after its own checks.
func (s *ReplyService) UpdateReply(ctx context.Context, in UpdateReplyInput) (*models.Reply, error) {
	if len(in.Data) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}
	fields := make(map[string]interface{}, len(in.Data))
	for k, v := range in.Data {
		if !updatableFields[k] {
			return nil, models.NewValidationError("Field cannot be updated: " + k)
		}
		fields[k] = v
	}

	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID)
	if err != nil {
		return nil, notFoundOr("Reply", in.ReplyID, err)
	}

	if _, ok := fields["body"]; ok {
		if body, ok := fields["body"].(string); !ok || body == "" {
			return nil, models.NewValidationError("Body is required")
		}
		if !reply.AuthoredBy(in.Session.ProfileID()) && !in.Session.IsModerator() {
			return nil, models.NewUnauthorizedError("You can only edit your own replies")
		}
	}

	if err := s.replyRepo.UpdateFields(ctx, in.ReplyID, fields); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.replyRepo.GetByID(ctx, in.ReplyID)
}

func notFoundOr(resource string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}
