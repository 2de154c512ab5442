// internal/app/engine/task/tasks.go
package taskengine

import (
	"context"
	"strings"
	"time"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxTaskTitleLen = 100

func validateTaskTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	switch {
	case title == "":
		return "", apperr.Validationf("task title is required")
	case len(title) > maxTaskTitleLen:
		return "", apperr.Validationf("task title must be at most %d characters", maxTaskTitleLen)
	}
	return title, nil
}

// requireParticipant errors unless the user is in the session's
// participant set.
func requireParticipant(sess models.StudySession, userID primitive.ObjectID, role string) error {
	if !sess.HasParticipant(userID) {
		return apperr.Permissionf("%s %s is not a participant of session %s", role, userID.Hex(), sess.ID.Hex())
	}
	return nil
}

func (e *Engine) loadSession(ctx context.Context, sessionID primitive.ObjectID) (models.StudySession, error) {
	sess, err := e.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return models.StudySession{}, apperr.Storage("read session", err)
	}
	if sess == nil {
		return models.StudySession{}, apperr.NotFoundf("session %s", sessionID.Hex())
	}
	return *sess, nil
}

// CreateTask attaches a task to a session. Both the assignee and the
// creating user must be participants of that session. The deadline is
// stored as given; past deadlines are allowed so overdue work can be
// recorded after the fact. The session lock is held across the
// existence re-check and the insert so the task cannot land in a
// session that a concurrent delete is tearing down.
func (e *Engine) CreateTask(ctx context.Context, sessionID primitive.ObjectID, title string, deadline time.Time, assigneeID, createdBy primitive.ObjectID) (models.SessionTask, error) {
	title, err := validateTaskTitle(title)
	if err != nil {
		return models.SessionTask{}, err
	}
	if deadline.IsZero() {
		return models.SessionTask{}, apperr.Validationf("task deadline is required")
	}
	if assigneeID.IsZero() || createdBy.IsZero() {
		return models.SessionTask{}, apperr.Validationf("assignee and creator are required")
	}

	unlock := e.locks.Lock(sessionID.Hex())
	defer unlock()

	sess, err := e.loadSession(ctx, sessionID)
	if err != nil {
		return models.SessionTask{}, err
	}
	if err := requireParticipant(sess, createdBy, "user"); err != nil {
		return models.SessionTask{}, err
	}
	if err := requireParticipant(sess, assigneeID, "assignee"); err != nil {
		return models.SessionTask{}, err
	}

	task, err := e.tasks.Create(ctx, models.SessionTask{
		SessionID:  sessionID,
		Title:      title,
		Deadline:   deadline.UTC(),
		AssigneeID: assigneeID,
		CreatedBy:  createdBy,
	})
	if err != nil {
		return models.SessionTask{}, apperr.Storage("insert task", err)
	}

	e.log.Info("task created",
		zap.String("task", task.ID.Hex()),
		zap.String("session", sessionID.Hex()),
		zap.String("assignee", assigneeID.Hex()))
	return task, nil
}

// UpdateTask rewrites a task's title, deadline, and assignee. The
// updating user and the new assignee must both be participants of the
// owning session. Creator and completion state are untouched.
func (e *Engine) UpdateTask(ctx context.Context, taskID primitive.ObjectID, title string, deadline time.Time, assigneeID, updatedBy primitive.ObjectID) (models.SessionTask, error) {
	title, err := validateTaskTitle(title)
	if err != nil {
		return models.SessionTask{}, err
	}
	if deadline.IsZero() {
		return models.SessionTask{}, apperr.Validationf("task deadline is required")
	}
	if assigneeID.IsZero() {
		return models.SessionTask{}, apperr.Validationf("assignee is required")
	}

	task, err := e.GetTask(ctx, taskID)
	if err != nil {
		return models.SessionTask{}, err
	}
	sess, err := e.loadSession(ctx, task.SessionID)
	if err != nil {
		return models.SessionTask{}, err
	}
	if err := requireParticipant(sess, updatedBy, "user"); err != nil {
		return models.SessionTask{}, err
	}
	if err := requireParticipant(sess, assigneeID, "assignee"); err != nil {
		return models.SessionTask{}, err
	}

	matched, err := e.tasks.Update(ctx, taskID, title, deadline.UTC(), assigneeID)
	if err != nil {
		return models.SessionTask{}, apperr.Storage("update task", err)
	}
	if !matched {
		return models.SessionTask{}, apperr.NotFoundf("task %s", taskID.Hex())
	}
	return e.GetTask(ctx, taskID)
}

// MarkCompleted flags a task done. Only its assignee may complete it.
// Soft-fail: a task that is already gone yields (false, nil); marking
// an already-completed task again is a no-op that still reports true.
func (e *Engine) MarkCompleted(ctx context.Context, taskID, actingUserID primitive.ObjectID) (bool, error) {
	task, err := e.tasks.GetByID(ctx, taskID)
	if err != nil {
		return false, apperr.Storage("read task", err)
	}
	if task == nil {
		return false, nil
	}
	if task.AssigneeID != actingUserID {
		return false, apperr.Permissionf("only the assignee may complete task %s", taskID.Hex())
	}

	matched, err := e.tasks.MarkCompleted(ctx, taskID)
	if err != nil {
		return false, apperr.Storage("mark task completed", err)
	}
	if matched {
		e.log.Info("task completed",
			zap.String("task", taskID.Hex()),
			zap.String("assignee", actingUserID.Hex()))
	}
	return matched, nil
}

// DeleteTask removes a single task. Only the task's creator or its
// assignee may delete it. Soft-fail: an absent task yields (false, nil).
func (e *Engine) DeleteTask(ctx context.Context, taskID, actingUserID primitive.ObjectID) (bool, error) {
	task, err := e.tasks.GetByID(ctx, taskID)
	if err != nil {
		return false, apperr.Storage("read task", err)
	}
	if task == nil {
		return false, nil
	}
	if task.CreatedBy != actingUserID && task.AssigneeID != actingUserID {
		return false, apperr.Permissionf("only the creator or assignee may delete task %s", taskID.Hex())
	}

	deleted, err := e.tasks.Delete(ctx, taskID)
	if err != nil {
		return false, apperr.Storage("delete task", err)
	}
	if deleted {
		e.log.Info("task deleted",
			zap.String("task", taskID.Hex()),
			zap.String("deleted_by", actingUserID.Hex()))
	}
	return deleted, nil
}

// PurgeSessionTasks is the caller-facing bulk delete: it removes every
// task of a session without touching the session itself. Only the
// session's organiser may purge. The session lock is held across the
// organiser check and the delete so the purge cannot interleave with a
// concurrent task create on the same session.
func (e *Engine) PurgeSessionTasks(ctx context.Context, sessionID, actingUserID primitive.ObjectID) (bool, error) {
	if sessionID.IsZero() {
		return false, nil
	}

	unlock := e.locks.Lock(sessionID.Hex())
	defer unlock()

	sess, err := e.loadSession(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if sess.OrganiserID != actingUserID {
		return false, apperr.Permissionf("only the organiser may purge tasks of session %s", sessionID.Hex())
	}
	return e.DeleteAllTasksForSession(ctx, sessionID)
}

// DeleteAllTasksForSession purges every task belonging to a session.
// Returns true when the purge ran, even if no tasks existed; a zero
// session id yields (false, nil). The session engine calls this inside
// its delete cascade, already holding the session lock, so no lock is
// taken here.
func (e *Engine) DeleteAllTasksForSession(ctx context.Context, sessionID primitive.ObjectID) (bool, error) {
	if sessionID.IsZero() {
		return false, nil
	}
	n, err := e.tasks.DeleteBySession(ctx, sessionID)
	if err != nil {
		return false, apperr.Storage("delete session tasks", err)
	}
	if n > 0 {
		e.log.Info("session tasks purged",
			zap.String("session", sessionID.Hex()),
			zap.Int64("count", n))
	}
	return true, nil
}

// GetTask returns a task or a not-found error.
func (e *Engine) GetTask(ctx context.Context, taskID primitive.ObjectID) (models.SessionTask, error) {
	task, err := e.tasks.GetByID(ctx, taskID)
	if err != nil {
		return models.SessionTask{}, apperr.Storage("read task", err)
	}
	if task == nil {
		return models.SessionTask{}, apperr.NotFoundf("task %s", taskID.Hex())
	}
	return *task, nil
}

// TasksForSession lists a session's tasks ordered by deadline.
func (e *Engine) TasksForSession(ctx context.Context, sessionID primitive.ObjectID) ([]models.SessionTask, error) {
	if _, err := e.loadSession(ctx, sessionID); err != nil {
		return nil, err
	}
	out, err := e.tasks.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, apperr.Storage("list tasks", err)
	}
	return out, nil
}

// TasksForAssignee lists every task assigned to the user across all
// sessions, ordered by deadline.
func (e *Engine) TasksForAssignee(ctx context.Context, assigneeID primitive.ObjectID) ([]models.SessionTask, error) {
	out, err := e.tasks.ListByAssignee(ctx, assigneeID)
	if err != nil {
		return nil, apperr.Storage("list tasks", err)
	}
	return out, nil
}
