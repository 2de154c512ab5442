// internal/domain/models/studysession.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultMaxParticipants is the participant cap applied to new sessions
// when the organiser does not choose one.
const DefaultMaxParticipants = 10

// StudySession is a scheduled meeting under an (optional) group.
//
// Invariants maintained by the session engine:
//   - EndTime is strictly after StartTime.
//   - The organiser is always present in Participants and can never be
//     removed.
//   - len(Participants) never exceeds MaxParticipants, and
//     MaxParticipants never drops below the current participant count.
type StudySession struct {
	ID              primitive.ObjectID   `bson:"_id" json:"id"`
	Title           string               `bson:"title" json:"title"`
	GroupID         *primitive.ObjectID  `bson:"group_id,omitempty" json:"group_id,omitempty"`
	OrganiserID     primitive.ObjectID   `bson:"organiser_id" json:"organiser_id"`
	StartTime       time.Time            `bson:"start_time" json:"start_time"`
	EndTime         time.Time            `bson:"end_time" json:"end_time"`
	Participants    []primitive.ObjectID `bson:"participants" json:"participants"`
	MaxParticipants int                  `bson:"max_participants" json:"max_participants"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasParticipant reports whether userID is in the participant set.
func (s StudySession) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range s.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
