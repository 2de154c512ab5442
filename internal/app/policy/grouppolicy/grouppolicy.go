// internal/app/policy/grouppolicy/grouppolicy.go

// Package grouppolicy is the single role gate for group-scoped actions.
// Every mutating membership operation goes through RequireAdmin / IsAdmin
// rather than re-deriving "is admin" locally, so the admin rule cannot
// drift between call sites.
package grouppolicy

import (
	"context"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleReader exposes the one membership question policy needs. The
// membership store implements it; tests use in-memory fakes.
type RoleReader interface {
	// RoleOf returns the member's role in the group, or "" for
	// non-members.
	RoleOf(ctx context.Context, groupID, userID primitive.ObjectID) (string, error)
}

// IsAdmin reports whether userID holds the admin role in the group,
// according to the authoritative group_memberships collection.
func IsAdmin(ctx context.Context, roles RoleReader, groupID, userID primitive.ObjectID) (bool, error) {
	role, err := roles.RoleOf(ctx, groupID, userID)
	if err != nil {
		return false, apperr.Storage("read role", err)
	}
	return role == models.RoleAdmin, nil
}

// IsMember reports whether userID has any standing in the group.
func IsMember(ctx context.Context, roles RoleReader, groupID, userID primitive.ObjectID) (bool, error) {
	role, err := roles.RoleOf(ctx, groupID, userID)
	if err != nil {
		return false, apperr.Storage("read role", err)
	}
	return role != "", nil
}

// RequireAdmin is the hard-fail variant of IsAdmin: non-admins get
// apperr.ErrPermission. Operations documented as pollable soft-fails call
// IsAdmin directly and turn false into a boolean result instead.
func RequireAdmin(ctx context.Context, roles RoleReader, groupID, userID primitive.ObjectID) error {
	ok, err := IsAdmin(ctx, roles, groupID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Permissionf("user %s is not an admin of group %s", userID.Hex(), groupID.Hex())
	}
	return nil
}

// IsOwner reports whether userID created the group. Ownership is an id
// comparison against the group document, not a role lookup; the owner
// also holds an admin membership from creation.
func IsOwner(group models.Group, userID primitive.ObjectID) bool {
	return group.OwnerID == userID
}
