package tools

import (
	"fmt"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeNoArchive    = "NO_ARCHIVE"
	ErrCodeArchiveError = "ARCHIVE_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// ErrNoArchive reports that no archive has been loaded yet.
func ErrNoArchive() error {
	return &CodedError{
		Code:    ErrCodeNoArchive,
		Message: "no archive loaded; call saz_load first",
	}
}

// WrapArchiveError wraps an archive load or assembly failure.
func WrapArchiveError(err error) error {
	if err == nil {
		return nil
	}
	return &CodedError{
		Code:    ErrCodeArchiveError,
		Message: "archive could not be loaded",
		Cause:   err,
	}
}
