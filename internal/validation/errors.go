// Package validation checks packing inputs and analyzes selections that exceed their budget.
package validation

import "fmt"

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// DuplicateIDError represents two topics or subtopics sharing an ID
type DuplicateIDError struct {
	ID   string
	Kind string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("validation error: duplicate %s id %q", e.Kind, e.ID)
}
