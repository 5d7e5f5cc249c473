package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches any *ValidationError via errors.Is.
var ErrValidation = errors.New("validation error")

// FieldError describes one rejected field of the input.
type FieldError struct {
	Index   int    `json:"index"`
	PID     int    `json:"pid"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	if f.Index < 0 {
		return fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return fmt.Sprintf("process %d (index %d): %s %s", f.PID, f.Index, f.Field, f.Message)
}

// ValidationError is returned when input is rejected before scheduling starts.
type ValidationError struct {
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Details))
	for i, d := range e.Details {
		parts[i] = d.String()
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError with the given details.
func NewValidationError(msg string, details ...FieldError) *ValidationError {
	return &ValidationError{Message: msg, Details: details}
}

// InvalidParameter reports a rejected scheduler parameter such as a quantum.
func InvalidParameter(field, msg string) *ValidationError {
	return NewValidationError("invalid scheduler configuration", FieldError{Index: -1, Field: field, Message: msg})
}

// InvariantViolation signals a programming defect inside a scheduler. It is
// only ever raised with panic.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return "scheduler invariant violated: " + e.Message
}

// Violatef panics with an *InvariantViolation.
func Violatef(format string, args ...any) {
	panic(&InvariantViolation{Message: fmt.Sprintf(format, args...)})
}
