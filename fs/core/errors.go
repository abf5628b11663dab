package core

import (
	"errors"
	"io/fs"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a directory already exists.
	// Re-exported from io/fs for convenience.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when permission is denied.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrNotDir is returned by Mkdir when a non-directory occupies the name.
	ErrNotDir = errors.New("not a directory")

	// ErrUnsupported is returned when an operation is not supported by the provider.
	ErrUnsupported = errors.New("operation not supported")
)

// IsNotExist reports whether err signals a missing target.
// This is the only failure a directory handle treats as an expected outcome.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// IsExist reports whether err signals that a directory is already present.
func IsExist(err error) bool {
	return errors.Is(err, fs.ErrExist)
}

// PathError wraps err in an *fs.PathError for the given operation and path.
// Returns nil if err is nil.
func PathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: path, Err: err}
}
