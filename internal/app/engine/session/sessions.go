// internal/app/engine/session/sessions.go
package sessionengine

import (
	"context"
	"strings"
	"time"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxSessionTitleLen = 100

// CreateSession records a new study session. The organiser is seeded as
// the first participant and can never be removed afterwards. A zero
// maxParticipants takes the default; the end time must be strictly
// after the start time. When the session belongs to a group the
// organiser must be a member of that group.
func (e *Engine) CreateSession(ctx context.Context, title string, groupID *primitive.ObjectID, organiserID primitive.ObjectID, start, end time.Time, maxParticipants int) (models.StudySession, error) {
	title = strings.TrimSpace(title)
	switch {
	case title == "":
		return models.StudySession{}, apperr.Validationf("session title is required")
	case len(title) > maxSessionTitleLen:
		return models.StudySession{}, apperr.Validationf("session title must be at most %d characters", maxSessionTitleLen)
	case organiserID.IsZero():
		return models.StudySession{}, apperr.Validationf("organiser is required")
	case start.IsZero() || end.IsZero():
		return models.StudySession{}, apperr.Validationf("start and end times are required")
	case !end.After(start):
		return models.StudySession{}, apperr.Validationf("session must end after it starts")
	}
	if maxParticipants == 0 {
		maxParticipants = models.DefaultMaxParticipants
	}
	if maxParticipants < 1 {
		return models.StudySession{}, apperr.Validationf("max participants must be at least 1")
	}

	organiser, err := e.users.FindByID(ctx, organiserID)
	if err != nil {
		return models.StudySession{}, apperr.Storage("resolve organiser", err)
	}
	if organiser == nil {
		return models.StudySession{}, apperr.Validationf("organiser does not exist")
	}

	if groupID != nil {
		if groupID.IsZero() {
			return models.StudySession{}, apperr.Validationf("group id must not be zero")
		}
		isMember, err := e.members.IsMember(ctx, *groupID, organiserID)
		if err != nil {
			return models.StudySession{}, err
		}
		if !isMember {
			return models.StudySession{}, apperr.Permissionf("organiser %s is not a member of group %s", organiserID.Hex(), groupID.Hex())
		}
	}

	sess, err := e.sessions.Create(ctx, models.StudySession{
		Title:           title,
		GroupID:         groupID,
		OrganiserID:     organiserID,
		StartTime:       start.UTC(),
		EndTime:         end.UTC(),
		Participants:    []primitive.ObjectID{organiserID},
		MaxParticipants: maxParticipants,
	})
	if err != nil {
		return models.StudySession{}, apperr.Storage("insert session", err)
	}

	e.log.Info("session created",
		zap.String("session", sess.ID.Hex()),
		zap.String("title", sess.Title),
		zap.String("organiser", organiserID.Hex()))
	return sess, nil
}

// GetSession returns a session or a not-found error.
func (e *Engine) GetSession(ctx context.Context, sessionID primitive.ObjectID) (models.StudySession, error) {
	sess, err := e.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return models.StudySession{}, apperr.Storage("read session", err)
	}
	if sess == nil {
		return models.StudySession{}, apperr.NotFoundf("session %s", sessionID.Hex())
	}
	return *sess, nil
}

// SessionsForGroup lists a group's sessions ordered by start time.
func (e *Engine) SessionsForGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.StudySession, error) {
	out, err := e.sessions.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Storage("list sessions", err)
	}
	return out, nil
}

// SessionsForUser lists every session the user participates in.
func (e *Engine) SessionsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.StudySession, error) {
	out, err := e.sessions.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("list sessions", err)
	}
	return out, nil
}

// SetMaxParticipants raises or requests a new capacity for the session.
// Organiser-only. The effective capacity never drops below the current
// participant count: a lower request is clamped up to it, so existing
// participants are never evicted. The organiser is always a participant,
// so even a non-positive request lands at a capacity of at least one.
func (e *Engine) SetMaxParticipants(ctx context.Context, sessionID primitive.ObjectID, n int, actingUserID primitive.ObjectID) (models.StudySession, error) {
	sess, err := e.GetSession(ctx, sessionID)
	if err != nil {
		return models.StudySession{}, err
	}
	if sess.OrganiserID != actingUserID {
		return models.StudySession{}, apperr.Permissionf("only the organiser may change session capacity")
	}

	unlock := e.locks.Lock(sessionID.Hex())
	defer unlock()

	updated, err := e.sessions.SetMaxParticipants(ctx, sessionID, n)
	if err != nil {
		return models.StudySession{}, apperr.Storage("update session capacity", err)
	}
	if updated == nil {
		return models.StudySession{}, apperr.NotFoundf("session %s", sessionID.Hex())
	}
	if updated.MaxParticipants != n {
		e.log.Info("session capacity clamped to participant count",
			zap.String("session", sessionID.Hex()),
			zap.Int("requested", n),
			zap.Int("effective", updated.MaxParticipants))
	}
	return *updated, nil
}

// DeleteSession removes a session and cascades to its tasks. Only the
// organiser may delete. Soft-fail: a session that is already gone
// yields (false, nil). The session lock is held across the cascade so
// a concurrent task create on the same session cannot slip between the
// task purge and the session delete.
func (e *Engine) DeleteSession(ctx context.Context, sessionID, actingUserID primitive.ObjectID) (bool, error) {
	sess, err := e.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return false, apperr.Storage("read session", err)
	}
	if sess == nil {
		return false, nil
	}
	if sess.OrganiserID != actingUserID {
		return false, apperr.Permissionf("only the organiser may delete session %s", sessionID.Hex())
	}

	unlock := e.locks.Lock(sessionID.Hex())
	defer unlock()

	var deleted int64
	err = e.uow.Run(ctx, func(ctx context.Context) error {
		if _, err := e.tasks.DeleteAllTasksForSession(ctx, sessionID); err != nil {
			return err
		}
		n, err := e.sessions.Delete(ctx, sessionID)
		if err != nil {
			return apperr.Storage("delete session", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return false, err
	}
	if deleted == 0 {
		return false, nil
	}

	e.log.Info("session deleted",
		zap.String("session", sessionID.Hex()),
		zap.String("deleted_by", actingUserID.Hex()))
	return true, nil
}

// ReapEndedBefore deletes every session whose end time is before the
// cutoff, cascading tasks as a normal delete would. Returns the number
// of sessions removed. Used by the background reaper.
func (e *Engine) ReapEndedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	ended, err := e.sessions.ListEndedBefore(ctx, cutoff)
	if err != nil {
		return 0, apperr.Storage("list ended sessions", err)
	}

	reaped := 0
	for _, sess := range ended {
		ok, err := e.DeleteSession(ctx, sess.ID, sess.OrganiserID)
		if err != nil {
			e.log.Warn("reap failed for session",
				zap.String("session", sess.ID.Hex()),
				zap.Error(err))
			continue
		}
		if ok {
			reaped++
		}
	}
	return reaped, nil
}
