package dirout

import (
	"path"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jmgilman/go/fs/core"
	"github.com/jmgilman/go/internal/logging"
)

// tree is the state shared by a root handle and all of its descendants.
type tree struct {
	backend core.Backend
	opts    options
	stats   counters
}

// Dir is a handle on one directory of a backend. It caches what it learns
// about its entries and coalesces concurrent operations on the same name.
//
// A Dir does not verify that its directory exists. Child handles returned by
// CreateDir and Preserve are owned by their parent and are dropped from it
// when the entry is removed.
type Dir struct {
	path string
	tree *tree
	log  *logging.Logger

	mu      sync.Mutex
	entries table
	pending registry
	// exhaustive reports that entries holds every existing child, so an
	// unknown name is known to be absent.
	exhaustive bool

	listing singleflight.Group
}

// New returns a handle on the directory at path in backend.
func New(backend core.Backend, path string, opts ...Option) *Dir {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newDir(&tree{backend: backend, opts: o}, cleanPath(path))
}

func newDir(t *tree, p string) *Dir {
	return &Dir{
		path:    p,
		tree:    t,
		log:     t.opts.logger.WithPath(p),
		entries: newTable(),
		pending: newRegistry(),
	}
}

func cleanPath(p string) string {
	if p == "" {
		return "."
	}
	return path.Clean(p)
}

// Path returns the backend path of the directory.
func (d *Dir) Path() string {
	return d.path
}

// Stats returns counters for the whole handle tree this Dir belongs to.
func (d *Dir) Stats() Stats {
	return d.tree.stats.snapshot()
}

// child returns a new, unenumerated handle for the entry name.
func (d *Dir) child(name string) *Dir {
	return newDir(d.tree, d.join(name))
}

func (d *Dir) join(name string) string {
	return path.Join(d.path, name)
}

// invalidate forgets name after a fault. The table can no longer be trusted
// to list every child, so the next Empty lists the directory again.
// Callers must hold d.mu.
func (d *Dir) invalidate(name string) {
	d.entries.forget(name)
	d.exhaustive = false
}

// resetKnownEmpty records that the directory was just emptied.
func (d *Dir) resetKnownEmpty() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries.reset()
	d.exhaustive = true
}
