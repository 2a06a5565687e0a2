// Package repository defines the data-access layer and the sentinel
// errors shared across stores. Higher layers branch on these values to
// pick HTTP responses without ever seeing driver errors or query text.
package repository

import "errors"

// ErrNotFound is returned when no row matches the requested id. Handlers
// translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write collides with existing state,
// such as a duplicate catalog name. Handlers translate this into 409.
var ErrConflict = errors.New("conflict")

// ErrUserExists is returned when registration hits the unique constraint
// on username or email. Exactly one of two concurrent registrations with
// the same credentials wins; the loser observes this error.
var ErrUserExists = errors.New("username or email already exists")

// ErrInvalidTransition is returned when a status change is not permitted
// from the row's current state. Handlers translate this into 409.
var ErrInvalidTransition = errors.New("invalid status transition")
