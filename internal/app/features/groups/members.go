// internal/app/features/groups/members.go
package groups

import (
	"net/http"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/actor"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/respond"
)

// HandleMembers handles GET /groups/{groupID}/members.
func (h *Handler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	groupID, err := urlID(r, "groupID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	members, err := h.Engine.Members(r.Context(), groupID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, members)
}

type addMemberRequest struct {
	Username string `json:"username"`
}

// HandleAddMember handles POST /groups/{groupID}/members: the owner's
// direct-add path, bypassing the approval gate.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	groupID, err := urlID(r, "groupID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	var req addMemberRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	if err := h.Engine.AddMemberDirect(r.Context(), groupID, actorID, req.Username); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.NoContent(w)
}

type changedResponse struct {
	Changed bool `json:"changed"`
}

// HandlePromote handles POST /groups/{groupID}/members/{userID}/promote.
// Answers {"changed":false} rather than an error when the acting user
// lacks standing or the target is not a member.
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	groupID, err := urlID(r, "groupID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	userID, err := urlID(r, "userID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	changed, err := h.Engine.PromoteToAdmin(r.Context(), groupID, userID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, changedResponse{Changed: changed})
}

// HandleRemoveMember handles DELETE /groups/{groupID}/members/{userID}.
// Same soft contract as promotion; the group owner is never removable.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	groupID, err := urlID(r, "groupID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	userID, err := urlID(r, "userID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	changed, err := h.Engine.RemoveMember(r.Context(), groupID, userID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, changedResponse{Changed: changed})
}
