// internal/app/features/tasks/tasks.go
package tasks

import (
	"net/http"
	"time"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/actor"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/respond"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createTaskRequest struct {
	SessionID  string    `json:"session_id"`
	Title      string    `json:"title"`
	Deadline   time.Time `json:"deadline"`
	AssigneeID string    `json:"assignee_id"`
}

// HandleCreate handles POST /tasks. The acting user is recorded as the
// creator and must, like the assignee, be a participant of the session.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	var req createTaskRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(req.SessionID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Validationf("session_id is not a valid object id"))
		return
	}
	assigneeID, err := primitive.ObjectIDFromHex(req.AssigneeID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Validationf("assignee_id is not a valid object id"))
		return
	}

	task, err := h.Engine.CreateTask(r.Context(), sessionID, req.Title, req.Deadline, assigneeID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, task)
}

// HandleGet handles GET /tasks/{taskID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	taskID, err := urlID(r, "taskID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	task, err := h.Engine.GetTask(r.Context(), taskID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, task)
}

type updateTaskRequest struct {
	Title      string    `json:"title"`
	Deadline   time.Time `json:"deadline"`
	AssigneeID string    `json:"assignee_id"`
}

// HandleUpdate handles PUT /tasks/{taskID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	taskID, err := urlID(r, "taskID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	var req updateTaskRequest
	if err := decode(r, &req); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	assigneeID, err := primitive.ObjectIDFromHex(req.AssigneeID)
	if err != nil {
		respond.Error(w, h.Log, apperr.Validationf("assignee_id is not a valid object id"))
		return
	}

	task, err := h.Engine.UpdateTask(r.Context(), taskID, req.Title, req.Deadline, assigneeID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, task)
}

type changedResponse struct {
	Changed bool `json:"changed"`
}

// HandleComplete handles POST /tasks/{taskID}/complete. Assignee-only;
// a task that no longer exists answers {"changed":false}.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	taskID, err := urlID(r, "taskID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	changed, err := h.Engine.MarkCompleted(r.Context(), taskID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, changedResponse{Changed: changed})
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

// HandleDelete handles DELETE /tasks/{taskID}. Creator or assignee
// only; an absent task answers {"deleted":false}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	taskID, err := urlID(r, "taskID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	deleted, err := h.Engine.DeleteTask(r.Context(), taskID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, deletedResponse{Deleted: deleted})
}

// HandleForSession handles GET /tasks/session/{sessionID}.
func (h *Handler) HandleForSession(w http.ResponseWriter, r *http.Request) {
	if _, err := actor.FromRequest(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	sessionID, err := urlID(r, "sessionID")
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	list, err := h.Engine.TasksForSession(r.Context(), sessionID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// HandlePurgeSession handles DELETE /tasks/session/{sessionID}: removes
// every task of a session without touching the session itself.
// Organiser-only.
func (h *Handler) HandlePurgeSession(w http.ResponseWriter, r *http.Request) {
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

	purged, err := h.Engine.PurgeSessionTasks(r.Context(), sessionID, actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, changedResponse{Changed: purged})
}

// HandleMine handles GET /tasks/mine: every task assigned to the acting
// user.
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	actorID, err := actor.FromRequest(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	list, err := h.Engine.TasksForAssignee(r.Context(), actorID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}
