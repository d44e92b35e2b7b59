package server

import (
	"errors"
	"time"

	"quorum/internal/middleware"
	"quorum/internal/models"
	"quorum/internal/render"
	"quorum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// threadAuthor is the author block rendered on each reply.
type threadAuthor struct {
	Name         string  `json:"name"`
	Pronouns     *string `json:"pronouns,omitempty"`
	AvatarURL    string  `json:"avatar_url,omitempty"`
	IsTeamMember bool    `json:"is_team_member"`
}

type threadReplyPayload struct {
	service.ReplyView
	Author threadAuthor `json:"author"`
	Posted string       `json:"posted"`
	// FeedbackEligible is true for an AI-authored reply that has not been
	// judged yet; the client shows the helpful prompt only then.
	FeedbackEligible bool `json:"feedback_eligible"`
}

type threadPayload struct {
	Question *models.Question     `json:"question"`
	Resolved bool                 `json:"resolved"`
	Replies  []threadReplyPayload `json:"replies"`
}

// GetThread returns a question with its replies, each annotated with the
// caller's capability flags (public; flags vary with the optional session).
func (s *Server) GetThread(c *fiber.Ctx) error {
	ctx := c.UserContext()
	session := middleware.SessionFromCtx(c)

	questionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	view, err := s.replyService.GetThread(ctx, session, questionID)
	if err != nil {
		status := fiber.StatusInternalServerError
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			status = fiber.StatusNotFound
		}
		return models.RespondWithError(c, status, err)
	}

	now := time.Now()
	payload := threadPayload{
		Question: view.Question,
		Resolved: view.Question.Resolved(),
		Replies:  make([]threadReplyPayload, 0, len(view.Replies)),
	}
	for _, rv := range view.Replies {
		reply := rv.Reply
		payload.Replies = append(payload.Replies, threadReplyPayload{
			ReplyView: rv,
			Author: threadAuthor{
				Name:         reply.Profile.DisplayName(),
				Pronouns:     profilePronouns(reply.Profile),
				AvatarURL:    render.AvatarURL(s.config.AvatarCDNBase, reply.Profile),
				IsTeamMember: reply.Profile.IsTeamMember(),
			},
			Posted: render.RelativeDate(reply.CreatedAt, now),
			FeedbackEligible: s.config.AIProfileID != 0 &&
				reply.AuthoredBy(s.config.AIProfileID) &&
				reply.Verdict() == models.VerdictUnknown,
		})
	}

	return c.JSON(payload)
}

func profilePronouns(p *models.Profile) *string {
	if p == nil {
		return nil
	}
	return p.Pronouns
}
