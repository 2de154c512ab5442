// internal/app/engine/task/engine.go
//
// Package taskengine owns session tasks: creation, edits, completion,
// and deletion. Every mutation validates the actors against the owning
// session's participant set.
package taskengine

import (
	"context"
	"time"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/keylock"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TaskStore is the persistence surface for session tasks.
// *tasks.Store satisfies it.
type TaskStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.SessionTask, error)
	Create(ctx context.Context, t models.SessionTask) (models.SessionTask, error)
	Update(ctx context.Context, id primitive.ObjectID, title string, deadline time.Time, assigneeID primitive.ObjectID) (bool, error)
	MarkCompleted(ctx context.Context, id primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) (int64, error)
	ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.SessionTask, error)
	ListByAssignee(ctx context.Context, assigneeID primitive.ObjectID) ([]models.SessionTask, error)
}

// SessionReader resolves the session a task belongs to so the engine
// can check the participant set. *studysessions.Store satisfies it.
type SessionReader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.StudySession, error)
}

// Engine coordinates task operations. The keylock map is shared with
// the session engine: task creation takes the session's lock so it
// cannot interleave with a delete-with-cascade of the same session.
type Engine struct {
	tasks    TaskStore
	sessions SessionReader
	locks    *keylock.Map
	log      *zap.Logger
}

func New(tasks TaskStore, sessions SessionReader, locks *keylock.Map, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		tasks:    tasks,
		sessions: sessions,
		locks:    locks,
		log:      log,
	}
}
