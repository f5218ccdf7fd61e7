package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotDirectory is wrapped by InvalidRootError when the root is not a directory
	ErrNotDirectory = errors.New("not a directory")

	// ErrInvalidThreshold is returned for a negative staleness threshold
	ErrInvalidThreshold = errors.New("staleness threshold must be zero or more days")
)

// InvalidRootError is the only fatal scan error: the root does not exist or is not a directory.
// It is returned before any traversal begins.
type InvalidRootError struct {
	Root string
	Err  error
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("invalid scan root %s: %v", e.Root, e.Err)
}

func (e *InvalidRootError) Unwrap() error { return e.Err }

// AccessError means an entry could not be listed, stat'ed or opened. The entry is skipped.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// ReadError means file content could not be read while fingerprinting or comparing.
// The file is excluded from the report.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// CancelledError is recorded when the caller cancelled the scan. The report is partial.
type CancelledError struct {
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("scan cancelled: %v", e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

// WarningKind classifies a non-fatal scan problem
type WarningKind string

const (
	WarningAccess    WarningKind = "access"
	WarningRead      WarningKind = "read"
	WarningCancelled WarningKind = "cancelled"
)

// Warning is a skipped entry or other non-fatal condition recorded in the report
type Warning struct {
	Kind    WarningKind `json:"kind" yaml:"kind"`
	Path    string      `json:"path,omitempty" yaml:"path,omitempty"`
	Message string      `json:"message" yaml:"message"`
}

// NewWarning converts a scan error into a report warning
func NewWarning(err error) Warning {
	var (
		accessErr *AccessError
		readErr   *ReadError
		cancelErr *CancelledError
	)
	switch {
	case errors.As(err, &accessErr):
		return Warning{Kind: WarningAccess, Path: accessErr.Path, Message: accessErr.Err.Error()}
	case errors.As(err, &readErr):
		return Warning{Kind: WarningRead, Path: readErr.Path, Message: readErr.Err.Error()}
	case errors.As(err, &cancelErr):
		return Warning{Kind: WarningCancelled, Message: cancelErr.Error()}
	default:
		return Warning{Kind: WarningAccess, Message: err.Error()}
	}
}
