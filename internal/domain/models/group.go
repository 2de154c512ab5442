// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership roles. Role is a scalar on the membership document; update
// the document to change a member's role.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Group represents a study group.
//
// NOTE:
//   - Member lists are not embedded on Group. All standing is stored in
//     the group_memberships collection.
//   - Name uniqueness is case-insensitive and enforced by a unique index
//     on name_ci.
type Group struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Name            string             `bson:"name" json:"name"`
	NameCI          string             `bson:"name_ci" json:"name_ci"`
	Description     string             `bson:"description" json:"description"`
	RequireApproval bool               `bson:"require_approval" json:"require_approval"`
	OwnerID         primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
