package domain

import "fmt"

// ErrorKind classifies engine errors for callers.
type ErrorKind string

const (
	// ErrorKindInvalidInput marks unrecoverable input faults (bad dates,
	// malformed clock values, unknown enum values).
	ErrorKindInvalidInput ErrorKind = "invalid_input"
	// ErrorKindInternal marks unexpected engine faults.
	ErrorKindInternal ErrorKind = "internal"
)

// Error is a structured, user-visible engine error.
type Error struct {
	Kind     ErrorKind
	Message  string
	Severity string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewInvalidInput creates an input-malformation error.
func NewInvalidInput(format string, args ...any) *Error {
	return &Error{
		Kind:     ErrorKindInvalidInput,
		Message:  fmt.Sprintf(format, args...),
		Severity: "error",
	}
}

// NewInternal creates an internal fault error.
func NewInternal(format string, args ...any) *Error {
	return &Error{
		Kind:     ErrorKindInternal,
		Message:  fmt.Sprintf(format, args...),
		Severity: "error",
	}
}
