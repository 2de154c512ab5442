// internal/app/features/shared/respond/respond.go
//
// Package respond centralizes JSON responses and the mapping from the
// domain error taxonomy to HTTP status codes, so every feature answers
// the same way.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/apperr"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// JSON writes v with the given status. Encoding failures are ignored;
// the header is already gone.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error maps a domain error to its HTTP status and writes the JSON
// error body. Unclassified errors are treated as storage failures: a
// 500 with a generic message, with the detail kept in the log.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status, kind := classify(err)
	body := errorBody{Error: err.Error(), Kind: kind}
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		body.Error = "internal error"
	}
	JSON(w, status, body)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrPermission):
		return http.StatusForbidden, "permission"
	case errors.Is(err, apperr.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, apperr.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	default:
		return http.StatusInternalServerError, "storage"
	}
}
