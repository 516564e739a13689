package admin

import (
	"errors"
	"fmt"
)

// ErrNotConfirmed is returned by Remove when no matching confirmation is
// pending. Deletion always goes through an explicit confirm step.
var ErrNotConfirmed = errors.New("removal requires confirmation")

// ErrBusy is returned when an operation is attempted while a submission is in
// flight.
var ErrBusy = errors.New("a submission is in progress")

// ValidationError reports a locally detected required-field omission. It
// never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UploadError reports a staged file whose upload call failed. The submission
// aborts before the create or update call fires, so the error names exactly
// one field.
type UploadError struct {
	Field string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for %s: %v", e.Field, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// MutationError reports a create, update, or delete rejected remotely. The
// message is the backend's structured error text when present, else the
// transport message, else the entity config's fallback for the operation.
type MutationError struct {
	Op      string // "create", "update", or "delete"
	Message string
	Err     error
}

func (e *MutationError) Error() string {
	return e.Message
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// LoadError reports a failed initial list fetch. It is a screen-level error;
// the HTTP status is preserved when known.
type LoadError struct {
	Status int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("failed to load records (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("failed to load records: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
