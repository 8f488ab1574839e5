package domain

import (
	"errors"
	"fmt"
)

// The error kinds below are the complete failure taxonomy of the core.
// Handlers map each kind to a transport status; nothing is retried
// internally and nothing is swallowed.

var (
	// ErrEmptyText rejects empty or whitespace-only submissions before
	// any model work happens.
	ErrEmptyText = errors.New("text must not be empty")

	// ErrNotFound covers both a genuinely absent record and a record
	// owned by someone else. The two cases are deliberately
	// indistinguishable so that record IDs leak nothing across owners.
	ErrNotFound = errors.New("analysis not found")

	// ErrInvalidCredentials covers a failed login attempt without
	// revealing whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken rejects registration with an already-used email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUnauthorized covers a missing or unverifiable caller identity.
	ErrUnauthorized = errors.New("authentication required")
)

// InferenceError wraps a model invocation failure. Treated as a
// transient server fault; the caller may resubmit.
type InferenceError struct {
	Stage string // "embed" or "classify"
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed at %s: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// PersistenceError wraps a durable-medium failure. The operation that
// produced it left no partial record behind.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
