// internal/app/features/groups/handler.go
//
// Feature: group membership. Creation, join flow with approval
// requests, roster management, and group deletion.
package groups

import (
	"encoding/json"
	"net/http"

	membershipengine "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/engine/membership"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler carries the feature's dependencies.
type Handler struct {
	Engine *membershipengine.Engine
	Log    *zap.Logger
}

func NewHandler(engine *membershipengine.Engine, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Log: logger}
}

// urlID parses a hex ObjectID out of a chi URL parameter.
func urlID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.Validationf("%s is not a valid object id", name)
	}
	return id, nil
}

// decode reads a JSON request body into dst.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validationf("malformed JSON body")
	}
	return nil
}
