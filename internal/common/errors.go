package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Extraction failure taxonomy. Each failure is scoped to the smallest unit
// possible (a field, a row, a section) and never aborts sibling sections.
var (
	// ErrSectionNotFound: the section's start marker is absent from the page.
	// Callers treat this as "section absent from this document".
	ErrSectionNotFound = errors.New("section not found")

	// ErrInvalidBand: section markers found but geometrically inconsistent
	// (adjacent or inverted markers).
	ErrInvalidBand = errors.New("invalid section band")

	// ErrHeaderNotFound: no recognizable table header inside the section band.
	ErrHeaderNotFound = errors.New("table header not found")

	// ErrHeaderResolutionLow: the best header row matched too few canonical
	// fields; the grid is rejected as not containing a recognizable table.
	ErrHeaderResolutionLow = errors.New("header resolution below threshold")

	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
