package domain

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// ErrEmptyCommand rejects a command with no text before the pipeline runs.
	ErrEmptyCommand = errors.New("command text is empty")

	// ErrProjectUnresolved means the directory could not supply an id.
	// The task proceeds without a project assignment.
	ErrProjectUnresolved = errors.New("project could not be resolved")
)

// ErrorKind tags every captured external failure so callers and tests can
// branch on kind instead of parsing diagnostic text.
type ErrorKind string

const (
	// KindMissingCommand is reported by the boundary when the request
	// carries no command field at all.
	KindMissingCommand ErrorKind = "MissingCommand"

	KindEmptyInput              ErrorKind = "EmptyInput"
	KindDirectoryQueryFailed    ErrorKind = "DirectoryQueryFailed"
	KindTaskCreationFailed      ErrorKind = "TaskCreationFailed"
	KindDateResolutionAmbiguous ErrorKind = "DateResolutionAmbiguous"
)

// PipelineError wraps a raw diagnostic (usually an HTTP response body) with
// its taxonomy kind. Failures local to one intent are carried as data in the
// batch result, never raised past the orchestrator.
type PipelineError struct {
	Kind       ErrorKind
	Diagnostic string
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Diagnostic)
}

// NewPipelineError builds a kinded error around a diagnostic string.
func NewPipelineError(kind ErrorKind, diagnostic string) *PipelineError {
	return &PipelineError{Kind: kind, Diagnostic: diagnostic}
}

// KindOf extracts the taxonomy kind from an error, or empty if untagged.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
