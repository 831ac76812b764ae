package fileio

import (
	"errors"
	"fmt"
	"io/fs"
)

// Standard errors returned by the fileio package.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermission indicates the file cannot be accessed.
	ErrPermission = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrEmptyPath indicates no path was given.
	ErrEmptyPath = errors.New("empty path")
)

// PathError represents an error associated with a file path.
type PathError struct {
	Op   string // Operation that failed (load, save)
	Path string // File path
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a new PathError.
func NewPathError(op, path string, err error) *PathError {
	return &PathError{Op: op, Path: path, Err: err}
}

// classify maps an os error onto the package sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	default:
		return err
	}
}
