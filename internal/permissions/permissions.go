// Package permissions computes what the current session may do with a reply.
// It is the single source of truth for capability flags: both the HTTP layer
// and the interaction workflows evaluate through here.
package permissions

import "quorum/internal/models"

// Permissions holds the capability flags for one (session, reply, question)
// triple.
type Permissions struct {
	IsAuthor     bool `json:"is_author"`
	IsModerator  bool `json:"is_moderator"`
	IsTeamMember bool `json:"is_team_member"`
	Resolvable   bool `json:"resolvable"`
}

// Evaluate derives capability flags. Pure, no I/O.
//
// A reply without an author profile (deleted account) yields zero permissions;
// such replies render nothing and offer no controls.
func Evaluate(session *models.Session, reply *models.Reply, question *models.Question) Permissions {
	if reply == nil || reply.Profile == nil || question == nil {
		return Permissions{}
	}

	p := Permissions{
		IsModerator:  session.IsModerator(),
		IsTeamMember: reply.Profile.IsTeamMember(),
	}

	if id := session.ProfileID(); id != 0 && question.ProfileID != nil {
		p.IsAuthor = id == *question.ProfileID
	}

	p.Resolvable = !question.Resolved() &&
		(p.IsAuthor || p.IsModerator) &&
		!question.HasPrivateTopic()

	return p
}

// CanUndoResolve reports whether the session may clear the solution marker.
// Only the question author or a moderator may undo, and only while the given
// reply is the accepted solution.
func CanUndoResolve(p Permissions, reply *models.Reply, question *models.Question) bool {
	if reply == nil || !question.Resolved() {
		return false
	}
	return (p.IsAuthor || p.IsModerator) && *question.ResolvedByID == reply.ID
}
