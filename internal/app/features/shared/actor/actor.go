// internal/app/features/shared/actor/actor.go
//
// Package actor extracts the acting user from a request. Identity is
// asserted by the front proxy and carried in the X-User-ID header; this
// service only validates the shape and threads the id into the engines,
// which enforce the actual permissions.
package actor

import (
	"net/http"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const Header = "X-User-ID"

// FromRequest returns the acting user's id.
func FromRequest(r *http.Request) (primitive.ObjectID, error) {
	raw := r.Header.Get(Header)
	if raw == "" {
		return primitive.NilObjectID, apperr.Permissionf("missing %s header", Header)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.Validationf("%s is not a valid object id", Header)
	}
	return id, nil
}
