package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given username.
func (f *Fixtures) CreateUser(ctx context.Context, username string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Username:   username,
		UsernameCI: text.Fold(username),
		FullName:   "Test " + username,
		Email:      username + "@example.com",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("CreateUser(%q) failed: %v", username, err)
	}
	return user
}

// CreateGroup inserts a group owned by ownerID.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, ownerID primitive.ObjectID, requireApproval bool) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		Description:     "Test group " + name,
		RequireApproval: requireApproval,
		OwnerID:         ownerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("CreateGroup(%q) failed: %v", name, err)
	}
	return group
}

// CreateMembership inserts a membership row.
func (f *Fixtures) CreateMembership(ctx context.Context, groupID, userID primitive.ObjectID, role string) models.GroupMembership {
	f.t.Helper()

	m := models.GroupMembership{
		GroupID:   groupID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("group_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("CreateMembership failed: %v", err)
	}
	return m
}

// CreateSession inserts a study session organised by organiserID, with
// the organiser as the only participant.
func (f *Fixtures) CreateSession(ctx context.Context, title string, organiserID primitive.ObjectID, maxParticipants int) models.StudySession {
	f.t.Helper()

	now := time.Now().UTC()
	sess := models.StudySession{
		ID:              primitive.NewObjectID(),
		Title:           title,
		OrganiserID:     organiserID,
		StartTime:       now.Add(time.Hour),
		EndTime:         now.Add(3 * time.Hour),
		Participants:    []primitive.ObjectID{organiserID},
		MaxParticipants: maxParticipants,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("study_sessions").InsertOne(ctx, sess); err != nil {
		f.t.Fatalf("CreateSession(%q) failed: %v", title, err)
	}
	return sess
}

// CreateTask inserts a task attached to sessionID.
func (f *Fixtures) CreateTask(ctx context.Context, sessionID primitive.ObjectID, title string, assigneeID, createdBy primitive.ObjectID) models.SessionTask {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.SessionTask{
		ID:         primitive.NewObjectID(),
		SessionID:  sessionID,
		Title:      title,
		Deadline:   now.Add(24 * time.Hour),
		AssigneeID: assigneeID,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("session_tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("CreateTask(%q) failed: %v", title, err)
	}
	return task
}
