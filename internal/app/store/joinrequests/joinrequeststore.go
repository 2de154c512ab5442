// internal/app/store/joinrequests/joinrequeststore.go
package joinrequeststore

import (
	"context"
	"errors"
	"time"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicatePending is returned when the user already has a pending
	// request for the group (partial unique index on status=pending).
	ErrDuplicatePending = errors.New("a pending join request for this group already exists")

	// ErrAlreadyResolved is returned by Resolve when the request is no
	// longer pending; the pending→terminal transition happens at most
	// once.
	ErrAlreadyResolved = errors.New("join request is already resolved")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("join_requests")}
}

// Create inserts a pending request with a fresh public ref token.
func (s *Store) Create(ctx context.Context, groupID, userID primitive.ObjectID) (models.JoinRequest, error) {
	req := models.JoinRequest{
		ID:          primitive.NewObjectID(),
		Ref:         uuid.NewString(),
		GroupID:     groupID,
		UserID:      userID,
		Status:      models.JoinRequestPending,
		RequestedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, req); err != nil {
		if wafflemongo.IsDup(err) {
			return models.JoinRequest{}, ErrDuplicatePending
		}
		return models.JoinRequest{}, err
	}
	return req, nil
}

// GetByID loads a request. Returns (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.JoinRequest, error) {
	var req models.JoinRequest
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetByRef loads a request by its public token. Returns (nil, nil) when
// absent.
func (s *Store) GetByRef(ctx context.Context, ref string) (*models.JoinRequest, error) {
	var req models.JoinRequest
	err := s.c.FindOne(ctx, bson.M{"ref": ref}).Decode(&req)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Resolve transitions a pending request to the given terminal status,
// stamping who processed it and when. The status=pending filter makes
// this a compare-and-swap: of two racing resolvers, exactly one matches
// and the other gets ErrAlreadyResolved.
func (s *Store) Resolve(ctx context.Context, id primitive.ObjectID, status string, processedBy primitive.ObjectID) (models.JoinRequest, error) {
	if status != models.JoinRequestApproved && status != models.JoinRequestRejected {
		return models.JoinRequest{}, errors.New(`status must be "approved" or "rejected"`)
	}

	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.JoinRequestPending},
		bson.M{"$set": bson.M{
			"status":       status,
			"processed_at": now,
			"processed_by": processedBy,
		}})
	if err != nil {
		return models.JoinRequest{}, err
	}
	if res.MatchedCount == 0 {
		return models.JoinRequest{}, ErrAlreadyResolved
	}

	var req models.JoinRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		return models.JoinRequest{}, err
	}
	return req, nil
}

// ListByGroup returns a group's requests, optionally filtered by status.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID, status string) ([]models.JoinRequest, error) {
	filter := bson.M{"group_id": groupID}
	if status != "" {
		filter["status"] = status
	}
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reqs []models.JoinRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// DeleteByGroup removes all requests for a group (group-delete cascade).
// Returns the number of documents deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
