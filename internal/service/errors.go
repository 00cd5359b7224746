package service

import (
	"fmt"

	"github.com/lshigami/Petrels/internal/model"
)

// ValidationError reports malformed input to CreateSession. No session is
// created when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid candidate profile: %s %s", e.Field, e.Reason)
}

// InvalidStateError reports an operation attempted against a session whose
// status forbids it. The session is left untouched.
type InvalidStateError struct {
	Operation string
	Status    model.SessionStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("operation %q is not allowed while the session is %s", e.Operation, e.Status)
}

// PersistenceError wraps a store failure. Reads degrade to "nothing stored";
// writes are logged and the in-memory session stays authoritative.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
