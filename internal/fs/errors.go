// Package fs models a directory tree rebuilt from a shell transcript and
// answers disk-usage queries over it.
//
// This file contains error types and error handling utilities.
package fs

import (
	"errors"
	"fmt"

	"dirsize/internal/logging"
)

var (
	errLogger = logging.GetLogger().WithPrefix("error")

	// ErrNavigation indicates the transcript moved the cursor somewhere
	// that cannot exist, such as above the root
	ErrNavigation = errors.New("invalid navigation")

	// ErrSizeOverflow indicates a directory total no longer fits in 64 bits
	ErrSizeOverflow = fmt.Errorf("%w: size total overflows uint64", ErrNavigation)

	// ErrInvalidQuery indicates query preconditions were violated
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNotFound indicates no index entry satisfies a query
	ErrNotFound = errors.New("no matching directory")
)

// Error wraps tree errors with context about the operation and the
// directory path it was applied to.
type Error struct {
	Op   string // Operation that failed (e.g., "cd ..", "smallest-at-least")
	Path string // Directory path at the time of failure
	Line int    // 1-based transcript line, 0 when not from a transcript
	Err  error  // Underlying error
}

// Error implements the error interface, providing a formatted error message
func (e *Error) Error() string {
	msg := fmt.Sprintf("operation %s failed: %v", e.Op, e.Err)
	if e.Path != "" {
		msg = fmt.Sprintf("operation %s on %s failed: %v", e.Op, e.Path, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Unwrap implements error unwrapping for the errors.Is/As functions
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given operation, path, and underlying error
func NewError(op string, path string, err error) *Error {
	fsErr := &Error{
		Op:   op,
		Path: path,
		Err:  err,
	}
	errLogger.Debug("Created new error: %v", fsErr)
	return fsErr
}

// Common operation names for consistent logging and error reporting
const (
	OpNavigateRoot    = "cd /"
	OpNavigateUp      = "cd .."
	OpNavigateInto    = "cd"
	OpDirEntry        = "dir"
	OpFileEntry       = "file"
	OpBoundedSum      = "bounded-sum"
	OpSmallestAtLeast = "smallest-at-least"
	OpSelect          = "select"
	OpLookup          = "lookup"
)
