// internal/app/features/tasks/handler.go
//
// Feature: session tasks. Creation, edits, completion, and deletion,
// all gated on the owning session's participant set.
package tasks

import (
	"encoding/json"
	"net/http"

	taskengine "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/engine/task"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler carries the feature's dependencies.
type Handler struct {
	Engine *taskengine.Engine
	Log    *zap.Logger
}

func NewHandler(engine *taskengine.Engine, logger *zap.Logger) *Handler {
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
