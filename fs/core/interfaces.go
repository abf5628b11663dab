package core

import "context"

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local, disk-backed filesystem.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates a remote filesystem (e.g., S3, cloud storage).
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Entry is one child of a listed directory.
type Entry struct {
	// Name is the base name of the entry, without any path separator.
	Name string
	// IsDir reports whether the entry is a directory.
	IsDir bool
}

// Backend is the filesystem contract a directory handle drives.
//
// Names are slash-separated paths relative to the provider root.
// Implementations must be safe for concurrent use.
type Backend interface {
	// RemoveAll removes name and everything below it.
	// It reports whether anything existed at name. A missing target is
	// reported either as (false, nil) or as an error wrapping fs.ErrNotExist.
	RemoveAll(ctx context.Context, name string) (existed bool, err error)

	// Mkdir creates a single directory.
	// It fails with an error wrapping fs.ErrExist if a directory already
	// exists at name, ErrNotDir if a non-directory does, and fs.ErrNotExist
	// if the parent is missing.
	Mkdir(ctx context.Context, name string) error

	// EmptyDir removes every child of the directory name and keeps name.
	EmptyDir(ctx context.Context, name string) error

	// ReadDir lists the direct children of name, sorted by name.
	ReadDir(ctx context.Context, name string) ([]Entry, error)

	// Type returns the underlying filesystem type.
	Type() FSType
}

// FS is a Backend that can also be seeded and probed.
// All providers in this module implement FS.
type FS interface {
	Backend

	// WriteFile writes data to name, creating or truncating it.
	// Parent directories must already exist unless the provider has
	// virtual directories.
	WriteFile(ctx context.Context, name string, data []byte) error

	// MkdirAll creates name along with any missing parents.
	// It does nothing if name is already a directory.
	MkdirAll(ctx context.Context, name string) error

	// Exists reports whether anything exists at name.
	// A false result with a non-nil error means existence is undetermined.
	Exists(ctx context.Context, name string) (bool, error)
}
