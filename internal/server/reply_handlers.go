package server

import (
	"errors"

	"quorum/internal/middleware"
	"quorum/internal/models"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps AppError codes to HTTP statuses.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "UNAUTHORIZED":
			return fiber.StatusForbidden
		case "CONFLICT":
			return fiber.StatusConflict
		}
	}
	return fiber.StatusInternalServerError
}

// UpdateReply applies a partial update from a {"data": {...}} body (protected)
func (s *Server) UpdateReply(c *fiber.Ctx) error {
	ctx := c.UserContext()
	session := middleware.SessionFromCtx(c)

	replyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Data map[string]interface{} `json:"data"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid request body"))
	}

	updated, err := s.replyService.UpdateReply(ctx, service.UpdateReplyInput{
		Session: session,
		ReplyID: replyID,
		Data:    req.Data,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(updated)
}

// DeleteReply deletes a reply (moderator only)
func (s *Server) DeleteReply(c *fiber.Ctx) error {
	ctx := c.UserContext()
	session := middleware.SessionFromCtx(c)

	replyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.replyService.Delete(ctx, session, replyID); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// TogglePublish flips reply visibility (moderator only)
func (s *Server) TogglePublish(c *fiber.Ctx) error {
	ctx := c.UserContext()
	session := middleware.SessionFromCtx(c)

	replyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	updated, err := s.replyService.TogglePublish(ctx, session, replyID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(updated)
}

// Resolve marks a reply as the question's accepted solution (protected)
func (s *Server) Resolve(c *fiber.Ctx) error {
	ctx := c.UserContext()
	session := middleware.SessionFromCtx(c)

	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ReplyID uint `json:"reply_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil || req.ReplyID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("reply_id is required"))
	}

	question, err := s.replyService.Resolve(ctx, service.ResolveInput{
		Session:    session,
		QuestionID: questionID,
		ReplyID:    req.ReplyID,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(question)
}

// UndoResolve clears the accepted solution marker (protected)
func (s *Server) UndoResolve(c *fiber.Ctx) error {
	ctx := c.UserContext()
	session := middleware.SessionFromCtx(c)

	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	replyID := uint(c.QueryInt("reply_id"))
	if replyID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("reply_id is required"))
	}

	question, err := s.replyService.UndoResolve(ctx, service.ResolveInput{
		Session:    session,
		QuestionID: questionID,
		ReplyID:    replyID,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(question)
}

// RecordFeedback records a helpful/unhelpful judgment on an AI reply (protected)
func (s *Server) RecordFeedback(c *fiber.Ctx) error {
	ctx := c.UserContext()
	session := middleware.SessionFromCtx(c)

	replyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Helpful *bool `json:"helpful"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil || req.Helpful == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("helpful is required"))
	}

	updated, err := s.feedbackService.RecordVerdict(ctx, service.RecordVerdictInput{
		Session: session,
		ReplyID: replyID,
		Helpful: *req.Helpful,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(updated)
}
