package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"quorum/internal/models"
	"quorum/internal/permissions"
)

// Thread is the wire shape of a question thread as served by the content
// store, replies annotated with the caller's capability flags.
type Thread struct {
	Question *models.Question `json:"question"`
	Resolved bool             `json:"resolved"`
	Replies  []ThreadReply    `json:"replies"`
}

// ThreadReply is one reply in a fetched thread.
type ThreadReply struct {
	Reply            *models.Reply           `json:"reply"`
	Permissions      permissions.Permissions `json:"permissions"`
	IsSolution       bool                    `json:"is_solution"`
	CanUndo          bool                    `json:"can_undo"`
	Author           ThreadAuthor            `json:"author"`
	Posted           string                  `json:"posted"`
	FeedbackEligible bool                    `json:"feedback_eligible"`
}

// ThreadAuthor is the rendered author block on a reply.
type ThreadAuthor struct {
	Name         string  `json:"name"`
	Pronouns     *string `json:"pronouns,omitempty"`
	AvatarURL    string  `json:"avatar_url,omitempty"`
	IsTeamMember bool    `json:"is_team_member"`
}

// GetThread fetches a question thread.
func (c *Client) GetThread(ctx context.Context, questionID uint) (*Thread, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/questions/%d", c.host, questionID), nil)
	if err != nil {
		return nil, fmt.Errorf("build thread request: %w", err)
	}

	var thread Thread
	if err := c.doJSON(ctx, req, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// Resolve marks the reply as the question's accepted solution.
func (c *Client) Resolve(ctx context.Context, questionID, replyID uint) error {
	payload, err := json.Marshal(map[string]uint{"reply_id": replyID})
	if err != nil {
		return fmt.Errorf("marshal resolve body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/questions/%d/resolve", c.host, questionID), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build resolve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(ctx, req)
}

// UndoResolve clears the question's accepted solution marker.
func (c *Client) UndoResolve(ctx context.Context, questionID, replyID uint) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/api/questions/%d/resolve?reply_id=%d", c.host, questionID, replyID), nil)
	if err != nil {
		return fmt.Errorf("build undo request: %w", err)
	}

	return c.do(ctx, req)
}

// TogglePublish flips the reply's visibility. The content store derives the
// new state from its own record, so there is nothing to send.
func (c *Client) TogglePublish(ctx context.Context, replyID uint) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/replies/%d/publish", c.host, replyID), nil)
	if err != nil {
		return fmt.Errorf("build publish request: %w", err)
	}

	return c.do(ctx, req)
}

func (c *Client) doJSON(ctx context.Context, req *http.Request, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("fetch auth token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("content API %s %s: status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// RemoteDiscussion adapts the content store API to the discussion surface the
// interaction workflows write through. It holds the last fetched thread as
// the question snapshot; Refresh re-fetches it.
type RemoteDiscussion struct {
	client     *Client
	questionID uint
	logger     *slog.Logger
	thread     *Thread
}

// OpenDiscussion fetches the thread and binds a discussion to it.
func OpenDiscussion(ctx context.Context, client *Client, questionID uint, logger *slog.Logger) (*RemoteDiscussion, error) {
	if logger == nil {
		logger = slog.Default()
	}
	thread, err := client.GetThread(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return &RemoteDiscussion{
		client:     client,
		questionID: questionID,
		logger:     logger,
		thread:     thread,
	}, nil
}

// Thread returns the last fetched thread snapshot.
func (d *RemoteDiscussion) Thread() *Thread {
	return d.thread
}

// Question returns the current question snapshot.
func (d *RemoteDiscussion) Question() *models.Question {
	return d.thread.Question
}

// Resolve updates the question's solution marker through the content store.
func (d *RemoteDiscussion) Resolve(ctx context.Context, markSolution bool, replyID *uint) error {
	if markSolution {
		if replyID == nil {
			return fmt.Errorf("marking a solution requires a reply id")
		}
		return d.client.Resolve(ctx, d.questionID, *replyID)
	}
	if !d.thread.Question.Resolved() {
		// Nothing marked, nothing to clear.
		return nil
	}
	id := *d.thread.Question.ResolvedByID
	if replyID != nil {
		id = *replyID
	}
	return d.client.UndoResolve(ctx, d.questionID, id)
}

// Publish flips reply visibility. The content store toggles from its stored
// state, so the caller's view of the current state is not sent.
func (d *RemoteDiscussion) Publish(ctx context.Context, _ bool, replyID uint) error {
	return d.client.TogglePublish(ctx, replyID)
}

// Delete removes the reply from the content store.
func (d *RemoteDiscussion) Delete(ctx context.Context, replyID uint) error {
	return d.client.DeleteReply(ctx, replyID)
}

// Refresh re-fetches the thread. A fetch failure keeps the stale snapshot;
// the next refresh reconciles.
func (d *RemoteDiscussion) Refresh() {
	thread, err := d.client.GetThread(context.Background(), d.questionID)
	if err != nil {
		d.logger.Warn("thread refresh failed",
			slog.Uint64("question_id", uint64(d.questionID)),
			slog.String("error", err.Error()))
		return
	}
	d.thread = thread
}
