// internal/app/engine/membership/members.go
package membershipengine

import (
	"context"
	"strings"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/policy/grouppolicy"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AddMemberDirect lets the group owner add a user by username without a
// join request, bypassing the approval gate. Owner-only: admins who are
// not the owner cannot use this path. The add is idempotent.
func (e *Engine) AddMemberDirect(ctx context.Context, groupID, actingUserID primitive.ObjectID, targetUsername string) error {
	group, err := e.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if !grouppolicy.IsOwner(group, actingUserID) {
		return apperr.Permissionf("only the owner of group %q may add members directly", group.Name)
	}

	targetUsername = strings.TrimSpace(targetUsername)
	if targetUsername == "" {
		return apperr.Validationf("target username is required")
	}
	target, err := e.users.FindByUsername(ctx, targetUsername)
	if err != nil {
		return apperr.Storage("resolve user", err)
	}
	if target == nil {
		return apperr.NotFoundf("user %q", targetUsername)
	}

	if err := e.memberships.Add(ctx, groupID, target.ID, models.RoleMember); err != nil {
		return apperr.Storage("insert membership", err)
	}

	e.log.Info("member added directly",
		zap.String("group", group.Name),
		zap.String("user", target.Username),
		zap.String("added_by", actingUserID.Hex()))
	return nil
}

// PromoteToAdmin raises the target to admin. Soft-fail: returns false
// when the acting user is not an admin or the target is not a member.
// The error return is for storage failures only.
func (e *Engine) PromoteToAdmin(ctx context.Context, groupID, targetUserID, actingUserID primitive.ObjectID) (bool, error) {
	ok, err := grouppolicy.IsAdmin(ctx, e.memberships, groupID, actingUserID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	promoted, err := e.memberships.SetRole(ctx, groupID, targetUserID, models.RoleAdmin)
	if err != nil {
		return false, apperr.Storage("set role", err)
	}
	if promoted {
		e.log.Info("member promoted to admin",
			zap.String("group", groupID.Hex()),
			zap.String("user", targetUserID.Hex()),
			zap.String("promoted_by", actingUserID.Hex()))
	}
	return promoted, nil
}

// RemoveMember removes the target's membership. Soft-fail: returns false
// when the acting user is not an admin, the target is the group owner,
// or the target is not a member.
func (e *Engine) RemoveMember(ctx context.Context, groupID, targetUserID, actingUserID primitive.ObjectID) (bool, error) {
	ok, err := grouppolicy.IsAdmin(ctx, e.memberships, groupID, actingUserID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	group, err := e.groups.GetByID(ctx, groupID)
	if err != nil {
		return false, apperr.Storage("read group", err)
	}
	if group == nil {
		return false, nil
	}
	// The owner can never lose standing in their own group.
	if grouppolicy.IsOwner(*group, targetUserID) {
		return false, nil
	}

	removed, err := e.memberships.Remove(ctx, groupID, targetUserID)
	if err != nil {
		return false, apperr.Storage("remove membership", err)
	}
	if removed {
		e.log.Info("member removed",
			zap.String("group", group.Name),
			zap.String("user", targetUserID.Hex()),
			zap.String("removed_by", actingUserID.Hex()))
	}
	return removed, nil
}

// Members lists a group's memberships. Member-gated: only users with
// standing in the group can see its roster.
func (e *Engine) Members(ctx context.Context, groupID, actingUserID primitive.ObjectID) ([]models.GroupMembership, error) {
	if _, err := e.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	isMember, err := grouppolicy.IsMember(ctx, e.memberships, groupID, actingUserID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperr.Permissionf("user %s is not a member of group %s", actingUserID.Hex(), groupID.Hex())
	}

	members, err := e.memberships.ListByGroup(ctx, groupID, "")
	if err != nil {
		return nil, apperr.Storage("list members", err)
	}
	return members, nil
}

// IsMember reports whether the user has any standing in the group. Used
// by the session engine to validate organisers and participants of
// group-scoped sessions.
func (e *Engine) IsMember(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error) {
	return grouppolicy.IsMember(ctx, e.memberships, groupID, userID)
}
