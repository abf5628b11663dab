// Package core defines the filesystem backend contract that directory
// handles are built on.
//
// A Backend exposes exactly the four calls a directory cache needs:
//
//   - RemoveAll: recursively delete an entry, reporting whether it existed
//   - Mkdir: create one directory, failing if anything is already there
//   - EmptyDir: delete every child of a directory, keeping the directory
//   - ReadDir: list one level of a directory with entry kinds
//
// Providers distinguish "target does not exist" from every other failure by
// returning errors that wrap fs.ErrNotExist. Callers test for it with
// IsNotExist; every other error is an opaque fault.
//
// FS extends Backend with the seeding and probing calls used by tests,
// tooling, and the conformance suite in fs/fstest.
//
// # Provider Implementations
//
//   - github.com/jmgilman/go/fs/billy - local and in-memory providers
//   - github.com/jmgilman/go/fs/minio - MinIO/S3 provider
package core
