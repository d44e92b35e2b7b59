package permissions

import (
	"testing"

	"quorum/internal/models"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func memberSession(profileID uint) *models.Session {
	return &models.Session{
		Profile: &models.Profile{ID: profileID},
		Role:    models.RoleMember,
	}
}

func moderatorSession(profileID uint) *models.Session {
	return &models.Session{
		Profile: &models.Profile{ID: profileID},
		Role:    models.RoleModerator,
	}
}

func openQuestion(authorID uint, topics ...models.Topic) *models.Question {
	return &models.Question{
		ID:        1,
		ProfileID: uintPtr(authorID),
		Topics:    topics,
	}
}

func authoredReply(profileID uint) *models.Reply {
	return &models.Reply{
		ID:        10,
		ProfileID: uintPtr(profileID),
		Profile:   &models.Profile{ID: profileID},
	}
}

func TestEvaluate_AuthorCanResolveOpenQuestion(t *testing.T) {
	t.Parallel()

	p := Evaluate(memberSession(5), authoredReply(9), openQuestion(5))
	assert.True(t, p.IsAuthor)
	assert.False(t, p.IsModerator)
	assert.True(t, p.Resolvable)
}

func TestEvaluate_ModeratorCanResolveOthersQuestions(t *testing.T) {
	t.Parallel()

	p := Evaluate(moderatorSession(99), authoredReply(9), openQuestion(5))
	assert.False(t, p.IsAuthor)
	assert.True(t, p.IsModerator)
	assert.True(t, p.Resolvable)
}

func TestEvaluate_ResolvedQuestionNeverResolvable(t *testing.T) {
	t.Parallel()

	q := openQuestion(5)
	q.ResolvedByID = uintPtr(10)

	for name, session := range map[string]*models.Session{
		"author":    memberSession(5),
		"moderator": moderatorSession(99),
		"bystander": memberSession(42),
		"anonymous": nil,
	} {
		t.Run(name, func(t *testing.T) {
			p := Evaluate(session, authoredReply(9), q)
			assert.False(t, p.Resolvable)
		})
	}
}

func TestEvaluate_PrivateTopicSuppressesResolve(t *testing.T) {
	t.Parallel()

	q := openQuestion(5,
		models.Topic{Label: "deployment"},
		models.Topic{Label: "#internal-only"},
	)

	p := Evaluate(memberSession(5), authoredReply(9), q)
	assert.True(t, p.IsAuthor, "private topics do not affect authorship")
	assert.False(t, p.Resolvable, "a single private topic disables resolution")

	mod := Evaluate(moderatorSession(1), authoredReply(9), q)
	assert.False(t, mod.Resolvable)
}

func TestEvaluate_BystanderHasNoCapabilities(t *testing.T) {
	t.Parallel()

	p := Evaluate(memberSession(42), authoredReply(9), openQuestion(5))
	assert.Equal(t, Permissions{}, p)
}

func TestEvaluate_MissingAuthorProfileYieldsNothing(t *testing.T) {
	t.Parallel()

	orphan := &models.Reply{ID: 10} // author account deleted
	p := Evaluate(moderatorSession(1), orphan, openQuestion(5))
	assert.Equal(t, Permissions{}, p)
}

func TestEvaluate_TeamMemberFlagComesFromReplyAuthor(t *testing.T) {
	t.Parallel()

	reply := authoredReply(9)
	reply.Profile.Teams = []models.Team{{ID: 1, Name: "infrastructure"}}

	p := Evaluate(memberSession(42), reply, openQuestion(5))
	assert.True(t, p.IsTeamMember)
}

func TestEvaluate_AnonymousSession(t *testing.T) {
	t.Parallel()

	p := Evaluate(nil, authoredReply(9), openQuestion(5))
	assert.Equal(t, Permissions{}, p)
}

func TestCanUndoResolve(t *testing.T) {
	t.Parallel()

	q := openQuestion(5)
	q.ResolvedByID = uintPtr(10)
	solution := authoredReply(9) // ID 10
	other := &models.Reply{ID: 11, ProfileID: uintPtr(9), Profile: &models.Profile{ID: 9}}

	t.Run("author may undo on the solution reply", func(t *testing.T) {
		p := Evaluate(memberSession(5), solution, q)
		assert.True(t, CanUndoResolve(p, solution, q))
	})

	t.Run("undo only offered on the resolving reply", func(t *testing.T) {
		p := Evaluate(memberSession(5), other, q)
		assert.False(t, CanUndoResolve(p, other, q))
	})

	t.Run("bystander may not undo", func(t *testing.T) {
		p := Evaluate(memberSession(42), solution, q)
		assert.False(t, CanUndoResolve(p, solution, q))
	})

	t.Run("unresolved question has nothing to undo", func(t *testing.T) {
		open := openQuestion(5)
		p := Evaluate(memberSession(5), solution, open)
		assert.False(t, CanUndoResolve(p, solution, open))
	})
}
