package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrConfig ErrorType = iota
	ErrFetch
	ErrParse
	ErrWrite
	ErrSigning
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrConfig:
		return "Config"
	case ErrFetch:
		return "Fetch"
	case ErrParse:
		return "Parse"
	case ErrWrite:
		return "Write"
	case ErrSigning:
		return "Signing"
	default:
		return "Unknown"
	}
}

// IndexError represents an error during index generation. Only Config,
// Write and Signing errors are fatal to the run; Fetch and Parse errors
// are absorbed per release.
type IndexError struct {
	Type    ErrorType
	Subject string
	Err     error
}

// Error implements the error interface
func (e *IndexError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Subject, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *IndexError) Unwrap() error {
	return e.Err
}
