// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"time"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_memberships")}
}

var errBadRole = errors.New(`role must be "admin" or "member"`)

// Add creates a membership. Adding an existing member is a no-op (the
// unique (group, user) index absorbs the duplicate), which makes joins
// idempotent by construction.
func (s *Store) Add(ctx context.Context, groupID, userID primitive.ObjectID, role string) error {
	if role != models.RoleAdmin && role != models.RoleMember {
		return errBadRole
	}

	doc := bson.M{
		"group_id":   groupID,
		"user_id":    userID,
		"role":       role,
		"created_at": time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, doc)
	if err != nil && wafflemongo.IsDup(err) {
		return nil
	}
	return err
}

// Remove deletes the membership for (groupID, userID). Returns true when
// a document was actually removed.
func (s *Store) Remove(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"group_id": groupID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// RoleOf returns the member's role, or "" when no membership exists.
func (s *Store) RoleOf(ctx context.Context, groupID, userID primitive.ObjectID) (string, error) {
	var m models.GroupMembership
	err := s.c.FindOne(ctx, bson.M{"group_id": groupID, "user_id": userID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.Role, nil
}

// SetRole updates a member's role. Returns true when a membership
// matched (the member exists in the group).
func (s *Store) SetRole(ctx context.Context, groupID, userID primitive.ObjectID, role string) (bool, error) {
	if role != models.RoleAdmin && role != models.RoleMember {
		return false, errBadRole
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"group_id": groupID, "user_id": userID},
		bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// ListByGroup returns all memberships for a group, optionally filtered by
// role. An empty role returns everyone.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID, role string) ([]models.GroupMembership, error) {
	filter := bson.M{"group_id": groupID}
	if role != "" {
		filter["role"] = role
	}
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.GroupMembership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListGroupIDsByUser returns the ids of every group the user belongs to.
func (s *Store) ListGroupIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var m models.GroupMembership
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		ids = append(ids, m.GroupID)
	}
	return ids, cur.Err()
}

// DeleteByGroup removes all memberships for a group (group-delete
// cascade). Returns the number of documents deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
