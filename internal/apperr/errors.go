// Package apperr defines the sentinel errors shared across the service.
// Handlers translate them to HTTP statuses at the edge; everything below
// the handlers wraps or returns them untouched.
package apperr

import "errors"

var (
	ErrBadRequest     = errors.New("bad request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrNotParticipant = errors.New("not a participant of this room")
	// ErrDeleteWindow is returned when a sender tries to delete a message
	// after the deletion window has passed.
	ErrDeleteWindow = errors.New("message can no longer be deleted")
	ErrInternal     = errors.New("internal error")
)
