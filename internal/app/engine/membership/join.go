// internal/app/engine/membership/join.go
package membershipengine

import (
	"context"
	"errors"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/policy/grouppolicy"
	joinrequeststore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/joinrequests"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// JoinGroup processes a user's attempt to join a group.
//
// Open groups admit the user immediately and idempotently; re-joining an
// existing member is a no-op, not an error. Approval-gated groups get a
// pending JoinRequest instead (returned to the caller), and the group
// owner is notified best-effort after the lock is released.
func (e *Engine) JoinGroup(ctx context.Context, groupID, userID primitive.ObjectID) (*models.JoinRequest, error) {
	if groupID.IsZero() {
		return nil, apperr.Validationf("group is required")
	}
	if userID.IsZero() {
		return nil, apperr.Validationf("user is required")
	}

	group, err := e.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	user, err := e.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("resolve user", err)
	}
	if user == nil {
		return nil, apperr.NotFoundf("user %s", userID.Hex())
	}

	request, err := e.joinLocked(ctx, group, *user)
	if err != nil {
		return nil, err
	}

	// Notification happens strictly after the lock is released and never
	// affects the outcome: the request stands even if delivery fails.
	if request != nil {
		owner, err := e.users.FindByID(ctx, group.OwnerID)
		if err != nil || owner == nil {
			e.log.Warn("join request created but owner could not be resolved for notification",
				zap.String("group", group.Name),
				zap.Error(err))
		} else {
			e.notifier.JoinRequested(ctx, *owner, *user, group, request.Ref)
		}
	}
	return request, nil
}

// joinLocked holds the group lock across the member-check and the write
// so two concurrent joins cannot both observe "not a member".
func (e *Engine) joinLocked(ctx context.Context, group models.Group, user models.User) (*models.JoinRequest, error) {
	unlock := e.locks.Lock(group.ID.Hex())
	defer unlock()

	role, err := e.memberships.RoleOf(ctx, group.ID, user.ID)
	if err != nil {
		return nil, apperr.Storage("read role", err)
	}
	if role != "" {
		// Already a member; nothing to do on either path.
		return nil, nil
	}

	if !group.RequireApproval {
		if err := e.memberships.Add(ctx, group.ID, user.ID, models.RoleMember); err != nil {
			return nil, apperr.Storage("insert membership", err)
		}
		e.log.Info("member joined",
			zap.String("group", group.Name),
			zap.String("user", user.Username))
		return nil, nil
	}

	request, err := e.requests.Create(ctx, group.ID, user.ID)
	if err != nil {
		if errors.Is(err, joinrequeststore.ErrDuplicatePending) {
			return nil, apperr.Duplicatef("join request for group %q by %s", group.Name, user.Username)
		}
		return nil, apperr.Storage("create join request", err)
	}

	e.log.Info("join request created",
		zap.String("group", group.Name),
		zap.String("user", user.Username),
		zap.String("request_ref", request.Ref))
	return &request, nil
}

// ApproveJoinRequest transitions a pending request to approved and
// inserts the membership row as one unit: a request never ends approved
// without its membership, and vice versa. Only a group admin may approve;
// re-processing a resolved request fails with ErrInvalidState.
func (e *Engine) ApproveJoinRequest(ctx context.Context, requestID, actingUserID primitive.ObjectID) (models.JoinRequest, error) {
	return e.resolveRequest(ctx, requestID, actingUserID, models.JoinRequestApproved)
}

// RejectJoinRequest transitions a pending request to rejected. Terminal;
// no membership is created and the transition cannot be undone.
func (e *Engine) RejectJoinRequest(ctx context.Context, requestID, actingUserID primitive.ObjectID) (models.JoinRequest, error) {
	return e.resolveRequest(ctx, requestID, actingUserID, models.JoinRequestRejected)
}

func (e *Engine) resolveRequest(ctx context.Context, requestID, actingUserID primitive.ObjectID, status string) (models.JoinRequest, error) {
	request, err := e.requests.GetByID(ctx, requestID)
	if err != nil {
		return models.JoinRequest{}, apperr.Storage("read join request", err)
	}
	if request == nil {
		return models.JoinRequest{}, apperr.NotFoundf("join request %s", requestID.Hex())
	}

	if err := grouppolicy.RequireAdmin(ctx, e.memberships, request.GroupID, actingUserID); err != nil {
		return models.JoinRequest{}, err
	}
	if request.Resolved() {
		return models.JoinRequest{}, apperr.InvalidStatef("join request %s is already %s", request.Ref, request.Status)
	}

	unlock := e.locks.Lock(request.GroupID.Hex())
	defer unlock()

	var resolved models.JoinRequest
	err = e.uow.Run(ctx, func(ctx context.Context) error {
		// Resolve is a compare-and-swap on status=pending, so a racing
		// resolver that lost still fails here even though the earlier
		// Resolved() check passed.
		r, err := e.requests.Resolve(ctx, requestID, status, actingUserID)
		if err != nil {
			if errors.Is(err, joinrequeststore.ErrAlreadyResolved) {
				return apperr.InvalidStatef("join request %s is already resolved", request.Ref)
			}
			return apperr.Storage("resolve join request", err)
		}
		if status == models.JoinRequestApproved {
			if err := e.memberships.Add(ctx, r.GroupID, r.UserID, models.RoleMember); err != nil {
				return apperr.Storage("insert membership", err)
			}
		}
		resolved = r
		return nil
	})
	if err != nil {
		return models.JoinRequest{}, err
	}

	e.log.Info("join request resolved",
		zap.String("request_ref", resolved.Ref),
		zap.String("status", resolved.Status),
		zap.String("processed_by", actingUserID.Hex()))
	return resolved, nil
}

// PendingRequests lists a group's pending requests. Admin-gated: the
// queue is a moderation surface.
func (e *Engine) PendingRequests(ctx context.Context, groupID, actingUserID primitive.ObjectID) ([]models.JoinRequest, error) {
	if _, err := e.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if err := grouppolicy.RequireAdmin(ctx, e.memberships, groupID, actingUserID); err != nil {
		return nil, err
	}
	reqs, err := e.requests.ListByGroup(ctx, groupID, models.JoinRequestPending)
	if err != nil {
		return nil, apperr.Storage("list join requests", err)
	}
	return reqs, nil
}

// RequestByRef resolves a request from its public token (the one placed
// in notification emails).
func (e *Engine) RequestByRef(ctx context.Context, ref string) (models.JoinRequest, error) {
	req, err := e.requests.GetByRef(ctx, ref)
	if err != nil {
		return models.JoinRequest{}, apperr.Storage("read join request", err)
	}
	if req == nil {
		return models.JoinRequest{}, apperr.NotFoundf("join request %q", ref)
	}
	return *req, nil
}
