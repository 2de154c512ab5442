// internal/app/engine/membership/groups.go
package membershipengine

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/policy/grouppolicy"
	groupstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/groups"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Group name constraints: 1–20 characters from a conservative charset.
const (
	maxGroupNameLen = 20
	maxGroupDescLen = 200
)

var groupNamePattern = regexp.MustCompile(`^[A-Za-z0-9 _.-]+$`)

func validateGroupName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validationf("group name is required")
	}
	if len(name) > maxGroupNameLen {
		return apperr.Validationf("group name exceeds %d characters", maxGroupNameLen)
	}
	if !groupNamePattern.MatchString(name) {
		return apperr.Validationf("group name contains characters outside letters, digits, space, underscore, dot and dash")
	}
	return nil
}

func validateGroupDescription(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return apperr.Validationf("group description is required")
	}
	if len(desc) > maxGroupDescLen {
		return apperr.Validationf("group description exceeds %d characters", maxGroupDescLen)
	}
	return nil
}

// CreateGroup validates the inputs, persists the group, and makes the
// creator its first admin, as one unit. No notification is sent for
// self-creation.
func (e *Engine) CreateGroup(ctx context.Context, name, description string, requireApproval bool, creatorID primitive.ObjectID) (models.Group, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if err := validateGroupName(name); err != nil {
		return models.Group{}, err
	}
	if err := validateGroupDescription(description); err != nil {
		return models.Group{}, err
	}

	creator, err := e.users.FindByID(ctx, creatorID)
	if err != nil {
		return models.Group{}, apperr.Storage("resolve creator", err)
	}
	if creator == nil {
		return models.Group{}, apperr.Validationf("creator %s does not exist", creatorID.Hex())
	}

	var created models.Group
	err = e.uow.Run(ctx, func(ctx context.Context) error {
		g, err := e.groups.Create(ctx, models.Group{
			Name:            name,
			Description:     description,
			RequireApproval: requireApproval,
			OwnerID:         creator.ID,
		})
		if err != nil {
			if errors.Is(err, groupstore.ErrDuplicateGroupName) {
				return apperr.Duplicatef("group %q", name)
			}
			return apperr.Storage("create group", err)
		}
		if err := e.memberships.Add(ctx, g.ID, creator.ID, models.RoleAdmin); err != nil {
			return apperr.Storage("insert creator membership", err)
		}
		created = g
		return nil
	})
	if err != nil {
		return models.Group{}, err
	}

	e.log.Info("group created",
		zap.String("group", created.Name),
		zap.String("owner", creator.Username),
		zap.Bool("require_approval", requireApproval))
	return created, nil
}

// GetGroup loads a group by id.
func (e *Engine) GetGroup(ctx context.Context, groupID primitive.ObjectID) (models.Group, error) {
	g, err := e.groups.GetByID(ctx, groupID)
	if err != nil {
		return models.Group{}, apperr.Storage("read group", err)
	}
	if g == nil {
		return models.Group{}, apperr.NotFoundf("group %s", groupID.Hex())
	}
	return *g, nil
}

// UpdateGroup changes name and/or description. Admin-gated. A blank name
// keeps the current one; the description always revalidates.
func (e *Engine) UpdateGroup(ctx context.Context, groupID, actingUserID primitive.ObjectID, name, description string) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name != "" {
		if err := validateGroupName(name); err != nil {
			return err
		}
	}
	if err := validateGroupDescription(description); err != nil {
		return err
	}
	if _, err := e.GetGroup(ctx, groupID); err != nil {
		return err
	}
	if err := grouppolicy.RequireAdmin(ctx, e.memberships, groupID, actingUserID); err != nil {
		return err
	}

	if err := e.groups.UpdateInfo(ctx, groupID, name, description); err != nil {
		if errors.Is(err, groupstore.ErrDuplicateGroupName) {
			return apperr.Duplicatef("group %q", name)
		}
		return apperr.Storage("update group", err)
	}
	return nil
}

// SetRequireApproval flips the approval gate. Admin-gated. Requests that
// are already pending remain pending and still need explicit resolution.
func (e *Engine) SetRequireApproval(ctx context.Context, groupID, actingUserID primitive.ObjectID, require bool) error {
	if _, err := e.GetGroup(ctx, groupID); err != nil {
		return err
	}
	if err := grouppolicy.RequireAdmin(ctx, e.memberships, groupID, actingUserID); err != nil {
		return err
	}
	if err := e.groups.SetRequireApproval(ctx, groupID, require); err != nil {
		return apperr.Storage("set require_approval", err)
	}
	return nil
}

// DeleteGroup removes a group and everything it owns: memberships and
// join requests go first, then the group row, as one unit. Admin-gated
// hard failure; there is no soft path for destroying a group.
func (e *Engine) DeleteGroup(ctx context.Context, groupID, actingUserID primitive.ObjectID) error {
	group, err := e.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if err := grouppolicy.RequireAdmin(ctx, e.memberships, groupID, actingUserID); err != nil {
		return err
	}

	unlock := e.locks.Lock(groupID.Hex())
	defer unlock()

	err = e.uow.Run(ctx, func(ctx context.Context) error {
		if _, err := e.requests.DeleteByGroup(ctx, groupID); err != nil {
			return apperr.Storage("delete join requests", err)
		}
		if _, err := e.memberships.DeleteByGroup(ctx, groupID); err != nil {
			return apperr.Storage("delete memberships", err)
		}
		if _, err := e.groups.Delete(ctx, groupID); err != nil {
			return apperr.Storage("delete group", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.log.Info("group deleted",
		zap.String("group", group.Name),
		zap.String("deleted_by", actingUserID.Hex()))
	return nil
}

// GroupsForUser lists every group the user belongs to.
func (e *Engine) GroupsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error) {
	ids, err := e.memberships.ListGroupIDsByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("list user groups", err)
	}
	groups, err := e.groups.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Storage("load groups", err)
	}
	return groups, nil
}
