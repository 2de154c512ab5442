// internal/app/store/studysessions/sessionstore.go
package sessionstore

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
	return &Store{c: db.Collection("study_sessions")}
}

// GetByID loads a session. Returns (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.StudySession, error) {
	var sess models.StudySession
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

// Create inserts the session. The engine has already validated times and
// seeded the participant set with the organiser.
func (s *Store) Create(ctx context.Context, sess models.StudySession) (models.StudySession, error) {
	now := time.Now().UTC()
	sess.ID = primitive.NewObjectID()
	sess.CreatedAt = now
	sess.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return models.StudySession{}, err
	}
	return sess, nil
}

// AddParticipant pushes userID into the participant set if, and only if,
// the user is not already present and the set is under capacity. Both
// guards live in the update filter, so the check and the push are one
// atomic document operation. Returns true when the push happened.
func (s *Store) AddParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":          sessionID,
			"participants": bson.M{"$ne": userID},
			"$expr":        bson.M{"$lt": bson.A{bson.M{"$size": "$participants"}, "$max_participants"}},
		},
		bson.M{
			"$push": bson.M{"participants": userID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveParticipant pulls userID out of the participant set. The filter
// excludes the organiser, so organiser removal can never happen at the
// storage level regardless of caller bugs. Returns true when a user was
// actually removed.
func (s *Store) RemoveParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":          sessionID,
			"organiser_id": bson.M{"$ne": userID},
			"participants": userID,
		},
		bson.M{
			"$pull": bson.M{"participants": userID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// SetMaxParticipants writes max(n, current participant count) using an
// aggregation-pipeline update, so the floor clamp is atomic with the
// write and a racing AddParticipant can never strand the session over
// capacity. Returns the stored session.
func (s *Store) SetMaxParticipants(ctx context.Context, sessionID primitive.ObjectID, n int) (*models.StudySession, error) {
	res, err := s.c.UpdateByID(ctx, sessionID, mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"max_participants": bson.M{"$max": bson.A{n, bson.M{"$size": "$participants"}}},
			"updated_at":       time.Now().UTC(),
		}}},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return s.GetByID(ctx, sessionID)
}

// Delete removes a session by ID. Returns the number of documents deleted
// (0 or 1). Task cascade is the engine's job and runs first.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByGroup returns a group's sessions ordered by start time.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.StudySession, error) {
	return s.list(ctx, bson.M{"group_id": groupID})
}

// ListByParticipant returns every session the user participates in,
// ordered by start time.
func (s *Store) ListByParticipant(ctx context.Context, userID primitive.ObjectID) ([]models.StudySession, error) {
	return s.list(ctx, bson.M{"participants": userID})
}

// ListEndedBefore returns sessions whose end time is before cutoff. The
// reaper worker feeds these back through the session engine so the task
// cascade applies.
func (s *Store) ListEndedBefore(ctx context.Context, cutoff time.Time) ([]models.StudySession, error) {
	return s.list(ctx, bson.M{"end_time": bson.M{"$lt": cutoff}})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.StudySession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sessions []models.StudySession
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
