// internal/app/features/studysessions/handler.go
//
// Feature: study session lifecycle. Scheduling, the participant
// roster, capacity changes, and deletion with task cascade.
package studysessions

import (
	"encoding/json"
	"net/http"

	sessionengine "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/engine/session"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler carries the feature's dependencies.
type Handler struct {
	Engine *sessionengine.Engine
	Log    *zap.Logger
}

func NewHandler(engine *sessionengine.Engine, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Log: logger}
}

func urlID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.Validationf("%s is not a valid object id", name)
	}
	return id, nil
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validationf("malformed JSON body")
	}
	return nil
}
