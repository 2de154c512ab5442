// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"time"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("session_tasks")}
}

// GetByID loads a task. Returns (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SessionTask, error) {
	var t models.SessionTask
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts the task. Participant validation has already happened in
// the engine, under the session lock.
func (s *Store) Create(ctx context.Context, t models.SessionTask) (models.SessionTask, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.SessionTask{}, err
	}
	return t, nil
}

// Update rewrites the mutable fields. CreatedBy and CreatedAt are never
// touched. Returns true when the task matched.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, title string, deadline time.Time, assigneeID primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":       title,
		"deadline":    deadline,
		"assignee_id": assigneeID,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// MarkCompleted sets the completed flag. Returns true when the task
// matched.
func (s *Store) MarkCompleted(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"completed":  true,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes one task. Returns true when a document was deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DeleteBySession removes every task owned by the session (cascade).
// Deleting zero tasks is a valid no-op; the count is informational.
func (s *Store) DeleteBySession(ctx context.Context, sessionID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListBySession returns the session's tasks ordered by deadline.
func (s *Store) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.SessionTask, error) {
	return s.list(ctx, bson.M{"session_id": sessionID})
}

// ListByAssignee returns the user's tasks across sessions, ordered by
// deadline.
func (s *Store) ListByAssignee(ctx context.Context, assigneeID primitive.ObjectID) ([]models.SessionTask, error) {
	return s.list(ctx, bson.M{"assignee_id": assigneeID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.SessionTask, error) {
	opts := options.Find().SetSort(bson.D{{Key: "deadline", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.SessionTask
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
