// internal/domain/models/joinrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Join request states. Pending is the only state a request can leave;
// approved and rejected are terminal.
const (
	JoinRequestPending  = "pending"
	JoinRequestApproved = "approved"
	JoinRequestRejected = "rejected"
)

// JoinRequest is a user's pending ask to join an approval-gated group.
// At most one pending request may exist per (group_id, user_id), enforced
// by a partial unique index.
//
// Ref is a stable public token (UUID) safe to put in notification emails
// and API responses in place of the Mongo document id.
type JoinRequest struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Ref     string             `bson:"ref" json:"ref"`
	GroupID primitive.ObjectID `bson:"group_id" json:"group_id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"user_id"`
	Status  string             `bson:"status" json:"status"`

	RequestedAt time.Time           `bson:"requested_at" json:"requested_at"`
	ProcessedAt *time.Time          `bson:"processed_at,omitempty" json:"processed_at,omitempty"`
	ProcessedBy *primitive.ObjectID `bson:"processed_by,omitempty" json:"processed_by,omitempty"`
}

// Resolved reports whether the request has reached a terminal state.
func (r JoinRequest) Resolved() bool {
	return r.Status == JoinRequestApproved || r.Status == JoinRequestRejected
}
