// Package thread implements the interactive workflows attached to a single
// reply inside a question discussion: marking the accepted solution,
// moderator publish/unpublish, confirm-then-commit deletion, and recording
// human feedback on AI-generated answers.
//
// All remote effects go through explicitly injected collaborators so each
// workflow is unit-testable in isolation; nothing here reaches for ambient
// shared state.
package thread

import (
	"context"

	"quorum/internal/models"
	"quorum/internal/permissions"
)

// TokenSource yields a bearer token for authenticating content store calls.
// Implementations may refresh; callers fetch a fresh token per call rather
// than caching one.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ContentAPI is the content store mutation surface the workflows write
// through. Both operations have idempotent partial-update semantics.
type ContentAPI interface {
	UpdateReply(ctx context.Context, replyID uint, fields map[string]interface{}) error
	DeleteReply(ctx context.Context, replyID uint) error
}

// Discussion is the enclosing question thread a reply belongs to. It owns the
// question snapshot and the mutations that change thread-level state.
type Discussion interface {
	// Question returns the current question snapshot.
	Question() *models.Question
	// Resolve updates the question's solution marker. markSolution true sets
	// the marker to replyID; false clears it (replyID may be nil on undo).
	Resolve(ctx context.Context, markSolution bool, replyID *uint) error
	// Publish flips the visibility of a reply given its current state.
	Publish(ctx context.Context, currentlyPublished bool, replyID uint) error
	// Delete removes a reply from the thread.
	Delete(ctx context.Context, replyID uint) error
	// Refresh asks the discussion to re-fetch and re-render its data.
	Refresh()
}

// Interaction binds one reply to its session and discussion and exposes the
// legal gestures. Create one per rendered reply; discard on unmount.
type Interaction struct {
	reply      *models.Reply
	session    *models.Session
	discussion Discussion

	perms   permissions.Permissions
	confirm DeleteConfirm
}

// NewInteraction evaluates permissions for the reply and returns the bound
// interaction. Returns nil when the reply has no author profile: such replies
// render nothing and carry no controls.
func NewInteraction(session *models.Session, reply *models.Reply, discussion Discussion) *Interaction {
	if reply == nil || reply.Profile == nil {
		return nil
	}
	return &Interaction{
		reply:      reply,
		session:    session,
		discussion: discussion,
		perms:      permissions.Evaluate(session, reply, discussion.Question()),
	}
}

// Permissions returns the capability flags computed at bind time.
func (i *Interaction) Permissions() permissions.Permissions {
	return i.perms
}

// IsSolution reports whether this reply is the question's accepted solution.
func (i *Interaction) IsSolution() bool {
	q := i.discussion.Question()
	return q.Resolved() && *q.ResolvedByID == i.reply.ID
}

// CanUndoResolve reports whether the undo control renders next to the
// solution badge for this session.
func (i *Interaction) CanUndoResolve() bool {
	return permissions.CanUndoResolve(i.perms, i.reply, i.discussion.Question())
}

// MarkSolution records this reply as the question's accepted solution.
// Legal only while the reply is resolvable; the remote failure propagates to
// the gesture handler, there is no retry here.
func (i *Interaction) MarkSolution(ctx context.Context) error {
	if !i.perms.Resolvable {
		return models.NewUnauthorizedError("You cannot resolve this question")
	}
	id := i.reply.ID
	return i.discussion.Resolve(ctx, true, &id)
}

// UndoSolution clears the question's solution marker.
func (i *Interaction) UndoSolution(ctx context.Context) error {
	if !i.CanUndoResolve() {
		return models.NewUnauthorizedError("You cannot undo the solution marker")
	}
	return i.discussion.Resolve(ctx, false, nil)
}

// TogglePublish flips the reply's visibility. Moderator only; the button
// label reflects current publishedAt presence, there is no optimistic state.
func (i *Interaction) TogglePublish(ctx context.Context) error {
	if !i.perms.IsModerator {
		return models.NewUnauthorizedError("Only moderators can publish or unpublish replies")
	}
	return i.discussion.Publish(ctx, i.reply.Published(), i.reply.ID)
}

// DeleteClick advances the confirm-then-commit delete gesture. The first
// click arms; the second commits the delete against the discussion. Returns
// whether the delete was committed. Moderator only.
func (i *Interaction) DeleteClick(ctx context.Context) (bool, error) {
	if !i.perms.IsModerator {
		return false, models.NewUnauthorizedError("Only moderators can delete replies")
	}
	return i.confirm.Click(ctx, i.reply.ID, i.discussion.Delete)
}

// ContainerClick disarms a pending delete confirmation. Wire it to any click
// on the reply's surrounding container.
func (i *Interaction) ContainerClick() {
	i.confirm.Disarm()
}

// DeleteArmed reports whether the next delete click will commit.
func (i *Interaction) DeleteArmed() bool {
	return i.confirm.Armed()
}
