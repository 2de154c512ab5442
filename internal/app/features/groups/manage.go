// internal/app/features/groups/manage.go
package groups

import (
	"net/http"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/actor"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/respond"
)

type createGroupRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	RequireApproval bool   `json:"require_approval"`
}

// HandleCreate handles POST /groups. The acting user becomes the
// group's owner and first admin.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	var req createGroupRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	group, err := h.Engine.CreateGroup(r.Context(), req.Name, req.Description, req.RequireApproval, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, group)
}

// HandleGet handles GET /groups/{groupID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	groupID, err := urlID(r, "groupID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	group, err := h.Engine.GetGroup(r.Context(), groupID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, group)
}

type updateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleUpdate handles PATCH /groups/{groupID}. A blank name keeps the
// current one.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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
	var req updateGroupRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	if err := h.Engine.UpdateGroup(r.Context(), groupID, actorID, req.Name, req.Description); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	group, err := h.Engine.GetGroup(r.Context(), groupID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, group)
}

type setApprovalRequest struct {
	RequireApproval bool `json:"require_approval"`
}

// HandleSetApproval handles PUT /groups/{groupID}/approval.
func (h *Handler) HandleSetApproval(w http.ResponseWriter, r *http.Request) {
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
	var req setApprovalRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	if err := h.Engine.SetRequireApproval(r.Context(), groupID, actorID, req.RequireApproval); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.NoContent(w)
}

// HandleDelete handles DELETE /groups/{groupID}. Memberships and join
// requests go with the group.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Engine.DeleteGroup(r.Context(), groupID, actorID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.NoContent(w)
}

// HandleMine handles GET /groups/mine: every group the acting user
// belongs to.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	groups, err := h.Engine.GroupsForUser(r.Context(), actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, groups)
}
