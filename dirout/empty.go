package dirout

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/fs/core"
	"github.com/jmgilman/go/internal/logging"
)

// Empty removes every entry of the directory.
//
// The first call lists the directory once and from then on the handle trusts
// its own record: a second Empty with nothing created in between makes no
// backend calls. Entries are removed concurrently through Remove, so removals
// already in flight are joined rather than repeated. Empty waits for every
// removal and returns the first fault.
//
// Entries that other operations created or removed while the listing ran are
// left as those operations left them. Only the handle's own entries are
// listed; child handles are enumerated when they are emptied themselves.
func (d *Dir) Empty(ctx context.Context) error {
	l, err := d.enumerate(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	names := append(d.entries.presentSince(l.since), l.inFlight...)
	d.mu.Unlock()

	if len(names) == 0 {
		return nil
	}
	slices.Sort(names)
	names = slices.Compact(names)

	d.log.Debug(ctx, "emptying directory", "operation", string(logging.OpEmpty), "entries", len(names))

	var g errgroup.Group
	if n := d.tree.opts.concurrency; n > 0 {
		g.SetLimit(n)
	}
	for _, name := range names {
		g.Go(func() error {
			_, err := d.Remove(ctx, name)
			return err
		})
	}
	return g.Wait()
}

// enumeration is the result of enumerating a directory.
type enumeration struct {
	// since is the table generation the listing reflects.
	since uint64
	// inFlight holds listed names that had an operation in flight.
	inFlight []string
}

// enumerate brings the entry table up to date with a listing of the
// directory and marks it exhaustive. Concurrent callers share one listing.
func (d *Dir) enumerate(ctx context.Context) (enumeration, error) {
	d.mu.Lock()
	if d.exhaustive {
		l := enumeration{since: d.entries.generation()}
		d.mu.Unlock()
		return l, nil
	}
	d.mu.Unlock()

	v, err, shared := d.listing.Do("list", func() (any, error) {
		d.mu.Lock()
		l := enumeration{since: d.entries.generation()}
		done := d.exhaustive
		d.mu.Unlock()
		if done {
			return l, nil
		}

		start := time.Now()
		entries, err := d.tree.backend.ReadDir(ctx, d.path)
		d.tree.stats.listings.Add(1)
		logging.LogBackendCall(ctx, d.log, logging.OpList, ".", time.Since(start), err)

		if err != nil {
			if !core.IsNotExist(err) {
				return l, classifyError(err, "list", d.path)
			}
			// A missing directory has no entries.
			entries = nil
		}

		d.mu.Lock()
		defer d.mu.Unlock()
		l.inFlight, d.exhaustive = d.entries.merge(l.since, entries, d.pending.busy, d.child)
		return l, nil
	})
	if shared {
		logging.LogJoin(ctx, d.log, logging.OpList, ".", "shared")
	}
	if err != nil {
		return enumeration{}, err
	}
	return v.(enumeration), nil
}
