package montecarlo

import "fmt"

// ValidationError indicates a request that can never execute: unknown
// framework, missing scenarios, out-of-range iteration counts. It is always
// returned synchronously from Start, before any trial executes.
type ValidationError struct {
	Field   string // request field that failed validation
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %s", e.Field, e.Message)
}

// NotFoundError indicates a lookup for an unknown run ID.
type NotFoundError struct {
	RunID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("run %q not found", e.RunID)
}

// NotCompletedError is returned by Results for a run that has not reached
// the completed state. It carries the run's current lifecycle position.
type NotCompletedError struct {
	RunID  string
	Status Status
	Stage  Stage
}

// Error implements the error interface.
func (e *NotCompletedError) Error() string {
	return fmt.Sprintf("run %q is not completed (status=%s, stage=%s)", e.RunID, e.Status, e.Stage)
}

// PersistenceError indicates a run store operation failed.
type PersistenceError struct {
	Op    string // store operation ("save", "load", ...)
	RunID string
	Cause error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error [op=%s, run=%s]: %v", e.Op, e.RunID, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
