// internal/app/features/groups/join.go
package groups

import (
	"net/http"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/actor"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/respond"
	"github.com/go-chi/chi/v5"
)

type joinResponse struct {
	Joined  bool   `json:"joined"`
	Pending bool   `json:"pending"`
	Ref     string `json:"ref,omitempty"`
}

// HandleJoin handles POST /groups/{groupID}/join. Open groups admit
// immediately; gated groups answer with the pending request's ref.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
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

	req, err := h.Engine.JoinGroup(r.Context(), groupID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if req == nil {
		respond.JSON(w, http.StatusOK, joinResponse{Joined: true})
		return
	}
	respond.JSON(w, http.StatusAccepted, joinResponse{Pending: true, Ref: req.Ref})
}

// HandlePendingRequests handles GET /groups/{groupID}/requests.
func (h *Handler) HandlePendingRequests(w http.ResponseWriter, r *http.Request) {
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

	pending, err := h.Engine.PendingRequests(r.Context(), groupID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, pending)
}

// HandleApprove handles POST /groups/requests/{requestID}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, true)
}

// HandleReject handles POST /groups/requests/{requestID}/reject.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, false)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, approve bool) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	requestID, err := urlID(r, "requestID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	resolvedBy := h.Engine.RejectJoinRequest
	if approve {
		resolvedBy = h.Engine.ApproveJoinRequest
	}
	resolved, err := resolvedBy(r.Context(), requestID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, resolved)
}

// HandleRequestByRef handles GET /groups/requests/ref/{ref}: resolution
// of the public token carried in notification emails.
func (h *Handler) HandleRequestByRef(w http.ResponseWriter, r *http.Request) {
	if _, err := actor.FromRequest(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	req, err := h.Engine.RequestByRef(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, req)
}
