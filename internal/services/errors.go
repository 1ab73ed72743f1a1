package services

import (
	"errors"
	"fmt"
)

// ErrorType classifies sync errors by how the reconcilers react to them.
type ErrorType string

const (
	// ErrorTypeRemote covers non-2xx responses and unexpected transport
	// failures. Scope is one record; the reconciler logs and moves on.
	ErrorTypeRemote ErrorType = "remote"
	// ErrorTypeValidation covers records rejected before any mutation is
	// attempted (missing names, missing cross-reference).
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConflict covers uniqueness violations reported by Atera.
	ErrorTypeConflict ErrorType = "conflict"
)

// ErrDuplicateEmail is reported by the Atera client when contact creation
// fails because the email already exists. The contact reconciler records
// the conflict to the side channel instead of treating it as fatal.
var ErrDuplicateEmail = errors.New("contact email already exists")

// ErrMissingName marks a contact whose name fields are all empty.
var ErrMissingName = errors.New("contact has no usable name fields")

// RemoteError is a non-2xx response from either platform. It carries enough
// context to reconstruct the failed call from the logs.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("[%s] %s returned status %d: %s", ErrorTypeRemote, e.Op, e.StatusCode, e.Body)
}

// ValidationError is a record rejected before any mutation was attempted.
type ValidationError struct {
	Reason  string
	Context map[string]interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", ErrorTypeValidation, e.Reason)
}
