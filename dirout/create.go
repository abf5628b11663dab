package dirout

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/jmgilman/go/fs/core"
	"github.com/jmgilman/go/internal/logging"
)

// CreateDir creates the directory name and returns its handle.
//
// A directory the handle already knows about is returned unchanged. If a
// Remove of name is in flight, CreateDir waits for it and then creates a
// fresh directory. If another CreateDir is in flight, CreateDir shares its
// result. If a Preserve is in flight and finds an existing directory,
// CreateDir empties that directory before returning it unless KeepContents
// is given.
//
// A name known to be a file fails with ErrExistsAsFile without calling the
// backend. A directory that exists on the backend but is unknown to the
// handle is a fault; use Preserve to adopt existing directories.
func (d *Dir) CreateDir(ctx context.Context, name string, opts ...CreateOption) (*Dir, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	o := createOptions{emptyIfPreserved: true}
	for _, opt := range opts {
		opt(&o)
	}

	for {
		res, err := d.ensure(ctx, name, logging.OpCreate, false)
		if err != nil {
			return nil, err
		}
		if !res.preserved || !o.emptyIfPreserved {
			return res.dir, nil
		}

		retry, err := d.emptyPreserved(ctx, name, res.dir)
		if err != nil {
			return nil, err
		}
		if !retry {
			return res.dir, nil
		}
	}
}

// Preserve ensures the directory name exists and returns its handle.
// An existing directory keeps its contents.
func (d *Dir) Preserve(ctx context.Context, name string) (*Dir, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	res, err := d.ensure(ctx, name, logging.OpPreserve, true)
	if err != nil {
		return nil, err
	}
	return res.dir, nil
}

// ensure resolves name to a directory handle, joining in-flight operations
// or calling Mkdir as the initiator. With adopt set, a directory that
// already exists on the backend resolves as preserved instead of failing.
func (d *Dir) ensure(ctx context.Context, name string, op logging.Operation, adopt bool) (creation, error) {
	d.mu.Lock()
	for {
		if f, ok := d.pending.creation(name); ok {
			d.mu.Unlock()
			d.tree.stats.joins.Add(1)

			res, err := f.wait(ctx)
			if err != nil {
				return creation{}, err
			}
			logging.LogJoin(ctx, d.log, op, name, res.String())

			if res.dir != nil {
				return res, nil
			}

			// The slot was vacated; create fresh.
			d.mu.Lock()
			continue
		}

		// A deletion without a creation is a preserved directory being emptied.
		if f, ok := d.pending.deletion(name); ok {
			d.mu.Unlock()
			d.tree.stats.joins.Add(1)

			if _, err := f.wait(ctx); err != nil {
				return creation{}, err
			}
			d.mu.Lock()
			continue
		}

		switch e := d.entries.get(name); e.kind {
		case kindDir:
			d.mu.Unlock()
			return creation{dir: e.dir}, nil
		case kindFile:
			d.mu.Unlock()
			return creation{}, existsAsFile(string(op), d.join(name))
		}
		break
	}

	cre := newFuture[creation]()
	del := newFuture[deletion]()
	d.pending.registerCreation(name, cre)
	d.pending.registerDeletion(name, del)
	d.mu.Unlock()

	start := time.Now()
	err := d.tree.backend.Mkdir(ctx, d.join(name))
	d.tree.stats.mkdirs.Add(1)
	logging.LogBackendCall(ctx, d.log, op, name, time.Since(start), err)

	var res creation
	present := true

	d.mu.Lock()
	switch {
	case err == nil:
		res = creation{dir: d.child(name)}
		d.entries.setDir(name, res.dir)
	case adopt && core.IsExist(err):
		res = creation{dir: d.child(name), preserved: true}
		d.entries.setDir(name, res.dir)
		err = nil
	case stderrors.Is(err, core.ErrNotDir):
		d.entries.setFile(name)
		err = existsAsFile(string(op), d.join(name))
	default:
		present = false
		d.invalidate(name)
		err = classifyError(err, string(op), d.join(name))
	}
	d.pending.deregisterCreation(name, cre)
	d.pending.deregisterDeletion(name, del)
	d.mu.Unlock()

	if err != nil {
		cre.fail(err)
		if present {
			// A file occupies the name; removers must still delete it.
			del.resolve(willExist)
		} else {
			del.fail(err)
		}
		return creation{}, err
	}

	cre.resolve(res)
	del.resolve(willExist)
	return res, nil
}

// emptyPreserved clears a preserved child directory in place. It reports
// retry when another operation on name got there first, in which case the
// caller must re-evaluate name from scratch.
func (d *Dir) emptyPreserved(ctx context.Context, name string, child *Dir) (bool, error) {
	d.mu.Lock()
	if _, ok := d.pending.deletion(name); ok || d.entries.get(name).dir != child {
		d.mu.Unlock()
		return true, nil
	}

	// Removers arriving now must wait and then delete.
	del := newFuture[deletion]()
	d.pending.registerDeletion(name, del)
	d.mu.Unlock()

	start := time.Now()
	err := d.tree.backend.EmptyDir(ctx, child.path)
	d.tree.stats.empties.Add(1)
	logging.LogBackendCall(ctx, d.log, logging.OpEmptyDir, name, time.Since(start), err)

	d.mu.Lock()
	if err != nil {
		err = classifyError(err, "empty_dir", child.path)
		d.invalidate(name)
		d.pending.deregisterDeletion(name, del)
		d.mu.Unlock()

		del.fail(err)
		return false, err
	}
	child.resetKnownEmpty()
	d.pending.deregisterDeletion(name, del)
	d.mu.Unlock()

	del.resolve(willExist)
	return false, nil
}
