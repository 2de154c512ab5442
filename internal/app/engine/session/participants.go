// internal/app/engine/session/participants.go
package sessionengine

import (
	"context"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AddParticipant adds a user to a session's participant set. Soft-fail:
// returns false when the user is already a participant, the session is
// at capacity, the user does not exist, or (for group sessions) the
// user is not a member of the session's group. The store performs the
// membership test, the duplicate test, and the capacity test in a
// single atomic update, so the capacity invariant holds even when two
// callers race for the last slot.
func (e *Engine) AddParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) (bool, error) {
	if userID.IsZero() {
		return false, nil
	}
	sess, err := e.GetSession(ctx, sessionID)
	if err != nil {
		return false, err
	}

	user, err := e.users.FindByID(ctx, userID)
	if err != nil {
		return false, apperr.Storage("resolve user", err)
	}
	if user == nil {
		return false, nil
	}

	if sess.GroupID != nil {
		isMember, err := e.members.IsMember(ctx, *sess.GroupID, userID)
		if err != nil {
			return false, err
		}
		if !isMember {
			return false, nil
		}
	}

	added, err := e.sessions.AddParticipant(ctx, sessionID, userID)
	if err != nil {
		return false, apperr.Storage("add participant", err)
	}
	if added {
		e.log.Info("participant added",
			zap.String("session", sessionID.Hex()),
			zap.String("user", userID.Hex()))
	}
	return added, nil
}

// RemoveParticipant drops a user from the participant set. Soft-fail:
// returns false when the user is not a participant or is the organiser.
// The organiser guard lives in the store's update filter, so the
// organiser can never be removed even by a racing caller.
func (e *Engine) RemoveParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) (bool, error) {
	if userID.IsZero() {
		return false, nil
	}
	if _, err := e.GetSession(ctx, sessionID); err != nil {
		return false, err
	}

	removed, err := e.sessions.RemoveParticipant(ctx, sessionID, userID)
	if err != nil {
		return false, apperr.Storage("remove participant", err)
	}
	if removed {
		e.log.Info("participant removed",
			zap.String("session", sessionID.Hex()),
			zap.String("user", userID.Hex()))
	}
	return removed, nil
}
