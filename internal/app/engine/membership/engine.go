// internal/app/engine/membership/engine.go

// Package membershipengine owns group role assignment, the join/approval
// workflow, and permission checks for group-scoped actions.
//
// Pollable operations (PromoteToAdmin, RemoveMember) report "did not
// happen" with a false return; everything else hard-fails with an
// apperr kind. That split is part of the engine's contract: UI callers
// poll the boolean operations in loops and must not see exceptions for
// routine refusals.
package membershipengine

import (
	"context"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/keylock"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// GroupStore is the persistence contract for group documents.
type GroupStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error)
	Create(ctx context.Context, g models.Group) (models.Group, error)
	UpdateInfo(ctx context.Context, id primitive.ObjectID, name, desc string) error
	SetRequireApproval(ctx context.Context, id primitive.ObjectID, require bool) error
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Group, error)
}

// MembershipStore is the persistence contract for membership rows. It
// doubles as the grouppolicy.RoleReader.
type MembershipStore interface {
	Add(ctx context.Context, groupID, userID primitive.ObjectID, role string) error
	Remove(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error)
	RoleOf(ctx context.Context, groupID, userID primitive.ObjectID) (string, error)
	SetRole(ctx context.Context, groupID, userID primitive.ObjectID, role string) (bool, error)
	ListByGroup(ctx context.Context, groupID primitive.ObjectID, role string) ([]models.GroupMembership, error)
	ListGroupIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error)
}

// JoinRequestStore is the persistence contract for join requests.
// Resolve must be a compare-and-swap on the pending status.
type JoinRequestStore interface {
	Create(ctx context.Context, groupID, userID primitive.ObjectID) (models.JoinRequest, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.JoinRequest, error)
	GetByRef(ctx context.Context, ref string) (*models.JoinRequest, error)
	Resolve(ctx context.Context, id primitive.ObjectID, status string, processedBy primitive.ObjectID) (models.JoinRequest, error)
	ListByGroup(ctx context.Context, groupID primitive.ObjectID, status string) ([]models.JoinRequest, error)
	DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error)
}

// UserDirectory is the identity collaborator. Absence is reported as
// (nil, nil); the engine never creates or mutates users.
type UserDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Notifier is the one-way notification sink. Calls are fire-and-forget:
// no return value, no retry, never invoked while a lock is held.
type Notifier interface {
	JoinRequested(ctx context.Context, owner, requester models.User, group models.Group, requestRef string)
}

// UnitOfWork runs a function atomically against the persistence layer
// (a mongo transaction in production, a direct call in tests).
type UnitOfWork interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// Engine is the membership engine. Construct with New.
type Engine struct {
	groups      GroupStore
	memberships MembershipStore
	requests    JoinRequestStore
	users       UserDirectory
	notifier    Notifier
	uow         UnitOfWork
	locks       *keylock.Map
	log         *zap.Logger
}

// New wires the engine. locks serialize read-then-mutate operations per
// group id and may be shared with other engines.
func New(groups GroupStore, memberships MembershipStore, requests JoinRequestStore, users UserDirectory, notifier Notifier, uow UnitOfWork, locks *keylock.Map, log *zap.Logger) *Engine {
	return &Engine{
		groups:      groups,
		memberships: memberships,
		requests:    requests,
		users:       users,
		notifier:    notifier,
		uow:         uow,
		locks:       locks,
		log:         log,
	}
}
