// Package billy provides go-billy-backed implementations of core.FS.
//
// LocalFS wraps billy's osfs rooted at a host directory; MemoryFS wraps
// memfs and is the provider of choice for tests.
//
// Usage:
//
//	// Manage ./build on the local disk
//	backend := billy.NewLocal("./build")
//	out := dirout.New(backend, ".")
//
//	// In-memory for tests
//	backend := billy.NewMemory()
//	_ = backend.WriteFile(ctx, "stale.txt", []byte("old"))
//
// # Thread Safety
//
// Providers are safe for concurrent use by multiple goroutines. Mkdir checks
// for an existing entry before creating, so two racing Mkdir calls from
// different processes may both succeed; callers coordinate through a
// directory handle.
package billy
