// Package repair proposes and applies content reductions for selections that overflow their budget.
package repair

import "fmt"

// Error represents a general repair error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("repair error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("repair error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ApplyError represents an error during strategy application (unknown type, missing IDs, etc.)
type ApplyError struct {
	Message string
	Cause   error
}

func (e *ApplyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("repair apply error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("repair apply error: %s", e.Message)
}

func (e *ApplyError) Unwrap() error {
	return e.Cause
}
