// internal/app/engine/session/engine.go
//
// Package sessionengine owns the lifecycle of study sessions: creation,
// the participant set, capacity changes, and deletion with cascade of
// the session's tasks. Participant-set invariants live here, backed by
// atomic store updates so they hold under concurrent callers.
package sessionengine

import (
	"context"
	"time"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/keylock"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SessionStore is the persistence surface the engine needs for study
// sessions. *studysessions.Store satisfies it.
type SessionStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.StudySession, error)
	Create(ctx context.Context, sess models.StudySession) (models.StudySession, error)
	AddParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) (bool, error)
	RemoveParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) (bool, error)
	SetMaxParticipants(ctx context.Context, sessionID primitive.ObjectID, n int) (*models.StudySession, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.StudySession, error)
	ListByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.StudySession, error)
	ListEndedBefore(ctx context.Context, cutoff time.Time) ([]models.StudySession, error)
}

// TaskPurger removes every task belonging to a session. The task engine
// provides it; the indirection keeps the two engines from importing
// each other.
type TaskPurger interface {
	DeleteAllTasksForSession(ctx context.Context, sessionID primitive.ObjectID) (bool, error)
}

// MembershipChecker answers whether a user belongs to a group. The
// membership engine provides it for group-scoped sessions.
type MembershipChecker interface {
	IsMember(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error)
}

// UserDirectory resolves users for organiser and participant checks.
type UserDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// UnitOfWork runs fn atomically where the deployment supports it.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// Engine coordinates session operations. The keylock map is shared with
// the task engine so a session delete and a task create on the same
// session never interleave.
type Engine struct {
	sessions SessionStore
	tasks    TaskPurger
	members  MembershipChecker
	users    UserDirectory
	uow      UnitOfWork
	locks    *keylock.Map
	log      *zap.Logger
}

func New(sessions SessionStore, tasks TaskPurger, members MembershipChecker, users UserDirectory, uow UnitOfWork, locks *keylock.Map, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		sessions: sessions,
		tasks:    tasks,
		members:  members,
		users:    users,
		uow:      uow,
		locks:    locks,
		log:      log,
	}
}
