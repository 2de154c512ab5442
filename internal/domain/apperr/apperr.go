// internal/domain/apperr/apperr.go

// Package apperr defines the error taxonomy shared by the core engines.
//
// Each failure kind is a sentinel error; operations wrap a kind with
// `fmt.Errorf(..., %w)` so callers classify with errors.Is and still get a
// useful message. The HTTP layer maps kinds to status codes.
//
// Operations documented as pollable soft-fails (promote, remove member,
// add/remove participant, bulk task delete) return booleans instead of
// these errors; everything else hard-fails with a wrapped kind.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input: blank or null fields,
	// out-of-range lengths, invalid timestamps.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate marks a uniqueness conflict (group name, pending join
	// request) so callers can report "already exists" distinctly.
	ErrDuplicate = errors.New("already exists")

	// ErrNotFound marks a referenced group/session/task/user that does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermission marks an actor lacking the required role or
	// relationship.
	ErrPermission = errors.New("permission denied")

	// ErrInvalidState marks an operation against an entity in a terminal
	// or incompatible state, such as re-processing a resolved join
	// request.
	ErrInvalidState = errors.New("invalid state")

	// ErrStorage marks a persistence-layer failure (connectivity,
	// unexpected constraint violations). Never swallowed silently.
	ErrStorage = errors.New("storage failure")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

// Duplicatef wraps ErrDuplicate with a formatted message.
func Duplicatef(format string, args ...any) error {
	return wrapf(ErrDuplicate, format, args...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

// Permissionf wraps ErrPermission with a formatted message.
func Permissionf(format string, args ...any) error {
	return wrapf(ErrPermission, format, args...)
}

// InvalidStatef wraps ErrInvalidState with a formatted message.
func InvalidStatef(format string, args ...any) error {
	return wrapf(ErrInvalidState, format, args...)
}

// Storage wraps an underlying persistence error as ErrStorage, keeping the
// cause in the chain for logging.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %v: %w", op, err, ErrStorage)
}

func wrapf(kind error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, kind)...)
}
