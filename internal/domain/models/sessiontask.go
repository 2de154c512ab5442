// internal/domain/models/sessiontask.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionTask is a unit of work attached to a study session.
//
// AssigneeID and CreatedBy must both be participants of the owning session
// at creation time; participation is re-checked on update rather than
// cached. Tasks are destroyed individually or en masse when the owning
// session is destroyed.
type SessionTask struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	SessionID  primitive.ObjectID `bson:"session_id" json:"session_id"`
	Title      string             `bson:"title" json:"title"`
	Deadline   time.Time          `bson:"deadline" json:"deadline"`
	AssigneeID primitive.ObjectID `bson:"assignee_id" json:"assignee_id"`
	CreatedBy  primitive.ObjectID `bson:"created_by" json:"created_by"`
	Completed  bool               `bson:"completed" json:"completed"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
