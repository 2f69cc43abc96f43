package domain

import "fmt"

// ErrorKind classifies command failures so callers can branch on outcome
// without inspecting message text.
type ErrorKind string

const (
	// ErrEmptyInput: the submitted text was empty after normalization.
	ErrEmptyInput ErrorKind = "empty_input"

	// ErrUnrecognizedCommand: no pattern matched; the error may carry up to
	// three suggestions.
	ErrUnrecognizedCommand ErrorKind = "unrecognized_command"

	// ErrConfirmationRequired: a dangerous action was blocked by the
	// confirmation gate. No side effect was performed.
	ErrConfirmationRequired ErrorKind = "confirmation_required"

	// ErrTargetNotFound: the named application, file, or process does not
	// exist.
	ErrTargetNotFound ErrorKind = "target_not_found"

	// ErrExternalOperationFailed: a subprocess, filesystem, or system query
	// operation failed.
	ErrExternalOperationFailed ErrorKind = "external_operation_failed"

	// ErrInternalFault: an unexpected fault inside a handler, caught at the
	// handler boundary.
	ErrInternalFault ErrorKind = "internal_fault"
)

// CommandError is the failure outcome of classification or execution. Every
// instance carries a non-empty human-readable message.
type CommandError struct {
	Kind        ErrorKind
	Message     string
	Suggestions []string
}

func (e *CommandError) Error() string {
	return e.Message
}

// NewCommandError builds a CommandError with a formatted message.
func NewCommandError(kind ErrorKind, format string, args ...any) *CommandError {
	return &CommandError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
