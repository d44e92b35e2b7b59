package thread

import (
	"context"
	"errors"
	"testing"
	"time"

	"quorum/internal/models"
	"quorum/internal/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(profileID uint) *models.Session {
	return &models.Session{Profile: &models.Profile{ID: profileID}, Role: models.RoleMember}
}

func moderator(profileID uint) *models.Session {
	return &models.Session{Profile: &models.Profile{ID: profileID}, Role: models.RoleModerator}
}

func humanReply(id, authorID uint) *models.Reply {
	return &models.Reply{
		ID:        id,
		ProfileID: uintPtr(authorID),
		Profile:   &models.Profile{ID: authorID, FirstName: "Sam"},
	}
}

func TestNewInteraction_OrphanedReplyRendersNothing(t *testing.T) {
	t.Parallel()

	d := newDiscussionStub(&models.Question{ID: 1, ProfileID: uintPtr(5)})
	assert.Nil(t, NewInteraction(member(5), &models.Reply{ID: 2}, d))
}

func TestInteraction_MarkSolution(t *testing.T) {
	t.Parallel()

	t.Run("author marks on an open question", func(t *testing.T) {
		t.Parallel()
		d := newDiscussionStub(&models.Question{ID: 1, ProfileID: uintPtr(5)})
		i := NewInteraction(member(5), humanReply(10, 9), d)
		require.NotNil(t, i)

		require.NoError(t, i.MarkSolution(context.Background()))
		require.Len(t, d.resolveCalls, 1)
		assert.True(t, d.resolveCalls[0].mark)
		assert.Equal(t, uint(10), *d.resolveCalls[0].replyID)
	})

	t.Run("bystander is rejected without a remote call", func(t *testing.T) {
		t.Parallel()
		d := newDiscussionStub(&models.Question{ID: 1, ProfileID: uintPtr(5)})
		i := NewInteraction(member(42), humanReply(10, 9), d)

		err := i.MarkSolution(context.Background())
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "UNAUTHORIZED", appErr.Code)
		assert.Empty(t, d.resolveCalls)
	})

	t.Run("remote failure propagates without retry", func(t *testing.T) {
		t.Parallel()
		d := newDiscussionStub(&models.Question{ID: 1, ProfileID: uintPtr(5)})
		resolveErr := errors.New("store rejected")
		d.resolveFn = func(context.Context, bool, *uint) error { return resolveErr }

		i := NewInteraction(member(5), humanReply(10, 9), d)
		assert.ErrorIs(t, i.MarkSolution(context.Background()), resolveErr)
		assert.Len(t, d.resolveCalls, 1)
	})
}

func TestInteraction_UndoSolution(t *testing.T) {
	t.Parallel()

	resolved := &models.Question{ID: 1, ProfileID: uintPtr(5), ResolvedByID: uintPtr(10)}

	t.Run("author undoes on the solution reply", func(t *testing.T) {
		t.Parallel()
		d := newDiscussionStub(resolved)
		i := NewInteraction(member(5), humanReply(10, 9), d)
		require.True(t, i.IsSolution())
		require.True(t, i.CanUndoResolve())

		require.NoError(t, i.UndoSolution(context.Background()))
		require.Len(t, d.resolveCalls, 1)
		assert.False(t, d.resolveCalls[0].mark)
		assert.Nil(t, d.resolveCalls[0].replyID)
	})

	t.Run("undo not offered on other replies", func(t *testing.T) {
		t.Parallel()
		d := newDiscussionStub(resolved)
		i := NewInteraction(member(5), humanReply(11, 9), d)
		assert.False(t, i.CanUndoResolve())
		assert.Error(t, i.UndoSolution(context.Background()))
		assert.Empty(t, d.resolveCalls)
	})
}

func TestInteraction_TogglePublish(t *testing.T) {
	t.Parallel()

	t.Run("moderator toggles based on current state", func(t *testing.T) {
		t.Parallel()
		d := newDiscussionStub(&models.Question{ID: 1, ProfileID: uintPtr(5)})

		hidden := humanReply(10, 9)
		i := NewInteraction(moderator(1), hidden, d)
		require.NoError(t, i.TogglePublish(context.Background()))

		now := time.Now()
		published := humanReply(10, 9)
		published.PublishedAt = &now
		i2 := NewInteraction(moderator(1), published, d)
		require.NoError(t, i2.TogglePublish(context.Background()))

		require.Len(t, d.publishCalls, 2)
		assert.False(t, d.publishCalls[0].currentlyPublished)
		assert.True(t, d.publishCalls[1].currentlyPublished)
		assert.Equal(t, uint(10), d.publishCalls[0].replyID)
	})

	t.Run("non-moderator is rejected", func(t *testing.T) {
		t.Parallel()
		d := newDiscussionStub(&models.Question{ID: 1, ProfileID: uintPtr(5)})
		i := NewInteraction(member(5), humanReply(10, 9), d)
		assert.Error(t, i.TogglePublish(context.Background()))
		assert.Empty(t, d.publishCalls)
	})
}

func TestInteraction_DeleteGesture(t *testing.T) {
	t.Parallel()

	t.Run("two clicks delete once", func(t *testing.T) {
		t.Parallel()
		d := newDiscussionStub(&models.Question{ID: 1, ProfileID: uintPtr(5)})
		i := NewInteraction(moderator(1), humanReply(10, 9), d)

		committed, err := i.DeleteClick(context.Background())
		require.NoError(t, err)
		assert.False(t, committed)
		assert.True(t, i.DeleteArmed())

		committed, err = i.DeleteClick(context.Background())
		require.NoError(t, err)
		assert.True(t, committed)
		assert.Equal(t, []uint{10}, d.deleteCalls)
	})

	t.Run("container click between delete clicks cancels", func(t *testing.T) {
		t.Parallel()
		d := newDiscussionStub(&models.Question{ID: 1, ProfileID: uintPtr(5)})
		i := NewInteraction(moderator(1), humanReply(10, 9), d)

		_, err := i.DeleteClick(context.Background())
		require.NoError(t, err)
		i.ContainerClick()
		assert.False(t, i.DeleteArmed())
		assert.Empty(t, d.deleteCalls)
	})

	t.Run("non-moderator cannot arm", func(t *testing.T) {
		t.Parallel()
		d := newDiscussionStub(&models.Question{ID: 1, ProfileID: uintPtr(5)})
		i := NewInteraction(member(5), humanReply(10, 9), d)

		_, err := i.DeleteClick(context.Background())
		assert.Error(t, err)
		assert.False(t, i.DeleteArmed())
	})
}

func TestInteraction_ResolvedThreadOffersNoControlsToBystander(t *testing.T) {
	t.Parallel()

	q := &models.Question{
		ID:           1,
		ProfileID:    uintPtr(5),
		ResolvedByID: uintPtr(10),
		Topics:       []models.Topic{{Label: "setup"}},
	}
	d := newDiscussionStub(q)
	i := NewInteraction(member(42), humanReply(11, 9), d)
	require.NotNil(t, i)

	assert.Equal(t, permissions.Permissions{}, i.Permissions())
	assert.False(t, i.CanUndoResolve())
	assert.Error(t, i.MarkSolution(context.Background()))
	assert.Error(t, i.TogglePublish(context.Background()))
	_, err := i.DeleteClick(context.Background())
	assert.Error(t, err)
}
