package domain

import (
	"errors"
	"fmt"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// Sentinels shared across layers for stable error mapping.
var (
	// ErrAlreadyExists indicates a uniqueness pre-check failure
	// (duplicate folio or CI on an exclusion list, taken username).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the requester's role/zone/ownership does not
	// permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyInPort indicates an arrival was registered for a record
	// that already transitioned to En puerto.
	ErrAlreadyInPort = errors.New("vessel already in port")
)

// ValidationError carries the field -> message mapping produced by the
// validation engine. Empty map means the draft is valid and this error is
// never returned.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d fields", len(e.Fields))
}

// BlockedError carries the human-readable message of the first active
// departure prohibition matching the draft.
type BlockedError struct {
	Message string
}

func (e BlockedError) Error() string {
	return e.Message
}
