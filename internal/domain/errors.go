package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails required-field or shape rules
// (e.g. missing title, unknown status).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned by service functions when the trip exists but the
// caller is not its owner.
// Handlers should map this to HTTP 403 Forbidden.
var ErrForbidden = errors.New("forbidden")
