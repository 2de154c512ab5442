// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity reference owned by the identity subsystem.
//
// NOTE:
//   - The core engines never create or authenticate users; they only
//     resolve them by id or username and compare ids.
//   - Group standing is not embedded here. Use the group_memberships
//     collection to discover a user's groups.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"username_ci"` // lowercase, diacritics-stripped
	FullName   string             `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
