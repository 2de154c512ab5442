// internal/app/features/studysessions/sessions.go
package studysessions

import (
	"net/http"
	"time"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/actor"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/respond"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createSessionRequest struct {
	Title           string    `json:"title"`
	GroupID         string    `json:"group_id,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	MaxParticipants int       `json:"max_participants,omitempty"`
}

// HandleCreate handles POST /sessions. The acting user becomes the
// organiser and the first participant.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	var req createSessionRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	var groupID *primitive.ObjectID
	if req.GroupID != "" {
		id, err := primitive.ObjectIDFromHex(req.GroupID)
		if err != nil {
			respond.Error(w, h.Log, apperr.Validationf("group_id is not a valid object id"))
			return
		}
		groupID = &id
	}

	sess, err := h.Engine.CreateSession(r.Context(), req.Title, groupID, actorID, req.StartTime, req.EndTime, req.MaxParticipants)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, sess)
}

// HandleGet handles GET /sessions/{sessionID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID, err := urlID(r, "sessionID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	sess, err := h.Engine.GetSession(r.Context(), sessionID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, sess)
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

// HandleDelete handles DELETE /sessions/{sessionID}. The session's
// tasks go with it; a session that is already gone answers
// {"deleted":false}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	sessionID, err := urlID(r, "sessionID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	deleted, err := h.Engine.DeleteSession(r.Context(), sessionID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, deletedResponse{Deleted: deleted})
}

type setCapacityRequest struct {
	MaxParticipants int `json:"max_participants"`
}

// HandleSetCapacity handles PUT /sessions/{sessionID}/capacity. The
// response carries the effective capacity, which may exceed the request
// when clamped to the current participant count.
func (h *Handler) HandleSetCapacity(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	sessionID, err := urlID(r, "sessionID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	var req setCapacityRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	sess, err := h.Engine.SetMaxParticipants(r.Context(), sessionID, req.MaxParticipants, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, sess)
}

// HandleMine handles GET /sessions/mine: every session the acting user
// participates in.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	sessions, err := h.Engine.SessionsForUser(r.Context(), actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, sessions)
}

// HandleForGroup handles GET /sessions/group/{groupID}.
func (h *Handler) HandleForGroup(w http.ResponseWriter, r *http.Request) {
	if _, err := actor.FromRequest(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	groupID, err := urlID(r, "groupID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	sessions, err := h.Engine.SessionsForGroup(r.Context(), groupID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, sessions)
}
