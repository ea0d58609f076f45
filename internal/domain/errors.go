package domain

import (
	"errors"
	"fmt"
)

// Per-change failures. They are reported in a sync result and never abort a batch.
var (
	// ErrPermissionDenied also covers missing entities, so a caller cannot tell the two apart.
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrTargetNotFound   = errors.New("target not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrMissingData      = errors.New("data is required")
	ErrMissingParent    = errors.New("parentId is required")
	ErrStaleWrite       = errors.New("entity was modified concurrently")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// Auth failures.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a bad value inside a change's data.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
