package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration signals an invalid parameter combination.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrInvalidInput signals that one or more supplied documents failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRunNotFound signals a missing clustering run.
	ErrRunNotFound = errors.New("run not found")
)

// Issue describes a single rejected document.
type Issue struct {
	DocumentID string
	Reason     string
}

// ValidationError aggregates every offending document in one batch failure.
// Validation happens before any vectorization, and the full list is reported
// at once rather than one offender at a time.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, iss := range e.Issues {
		if iss.DocumentID == "" {
			parts = append(parts, iss.Reason)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", iss.DocumentID, iss.Reason))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError creates a batch validation failure.
func NewValidationError(issues []Issue) error {
	return &ValidationError{Issues: issues}
}
