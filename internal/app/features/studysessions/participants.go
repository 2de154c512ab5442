// internal/app/features/studysessions/participants.go
package studysessions

import (
	"net/http"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/actor"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/respond"
)

type changedResponse struct {
	Changed bool `json:"changed"`
}

// HandleAddParticipant handles POST /sessions/{sessionID}/participants/{userID}.
// Answers {"changed":false} when the user is already in, the session is
// full, or the user has no standing in the session's group.
func (h *Handler) HandleAddParticipant(w http.ResponseWriter, r *http.Request) {
	if _, err := actor.FromRequest(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	sessionID, err := urlID(r, "sessionID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	userID, err := urlID(r, "userID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	changed, err := h.Engine.AddParticipant(r.Context(), sessionID, userID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, changedResponse{Changed: changed})
}

// HandleRemoveParticipant handles DELETE /sessions/{sessionID}/participants/{userID}.
// The organiser always answers {"changed":false}.
func (h *Handler) HandleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	if _, err := actor.FromRequest(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	sessionID, err := urlID(r, "sessionID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	userID, err := urlID(r, "userID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	changed, err := h.Engine.RemoveParticipant(r.Context(), sessionID, userID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, changedResponse{Changed: changed})
}
