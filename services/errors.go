package services

import "fmt"

// The domain distinguishes three failure channels so callers can branch
// without matching message strings: user-correctable validation failures,
// integrity violations (a referenced record is missing), and persistence
// faults.

// ValidationError carries per-field messages for user-correctable input
// problems. It is returned as a value by Validate methods and only travels as
// an error when a write is attempted with invalid input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// NotFoundError reports a record the caller claimed exists but does not: a
// caller contract violation, not user input.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// StorageError wraps a persistence adapter failure.
type StorageError struct {
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func storageErr(err error) error {
	return &StorageError{Cause: err}
}
