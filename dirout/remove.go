package dirout

import (
	"context"
	"fmt"
	"time"

	"github.com/jmgilman/go/fs/core"
	"github.com/jmgilman/go/internal/logging"
)

// RemoveOutcome reports what Remove found.
type RemoveOutcome int

const (
	// Deleted means the entry existed and was removed.
	Deleted RemoveOutcome = iota + 1
	// DidNotExist means there was nothing to remove.
	DidNotExist
)

// String returns a string representation of the outcome.
func (o RemoveOutcome) String() string {
	switch o {
	case Deleted:
		return "deleted"
	case DidNotExist:
		return "did_not_exist"
	default:
		return fmt.Sprintf("RemoveOutcome(%d)", int(o))
	}
}

// Remove deletes the entry name and everything below it.
//
// A name the handle knows to be absent returns DidNotExist without touching
// the backend. If another Remove of name is in flight, Remove waits for it
// and reports its outcome. If a CreateDir or Preserve of name is in flight,
// Remove waits for it and then deletes what it created.
func (d *Dir) Remove(ctx context.Context, name string) (RemoveOutcome, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}

	d.mu.Lock()
	for {
		if f, ok := d.pending.deletion(name); ok {
			d.mu.Unlock()
			d.tree.stats.joins.Add(1)

			res, err := f.wait(ctx)
			if err != nil {
				return 0, err
			}
			logging.LogJoin(ctx, d.log, logging.OpRemove, name, res.String())

			switch res {
			case absent:
				return DidNotExist, nil
			case deleted:
				return Deleted, nil
			}

			// The awaited operation left the entry in place.
			d.mu.Lock()
			continue
		}

		e := d.entries.get(name)
		if e.kind == kindAbsent || (e.kind == kindUnknown && d.exhaustive) {
			d.mu.Unlock()
			return DidNotExist, nil
		}
		break
	}

	del := newFuture[deletion]()
	cre := newFuture[creation]()
	d.pending.registerDeletion(name, del)
	d.pending.registerCreation(name, cre)
	d.mu.Unlock()

	start := time.Now()
	existed, err := d.tree.backend.RemoveAll(ctx, d.join(name))
	d.tree.stats.removes.Add(1)
	logging.LogBackendCall(ctx, d.log, logging.OpRemove, name, time.Since(start), err)

	if err != nil && !core.IsNotExist(err) {
		err = classifyError(err, "remove", d.join(name))

		d.mu.Lock()
		d.invalidate(name)
		d.pending.deregisterDeletion(name, del)
		d.pending.deregisterCreation(name, cre)
		d.mu.Unlock()

		del.fail(err)
		cre.fail(err)
		return 0, err
	}

	outcome, res := Deleted, deleted
	if err != nil || !existed {
		outcome, res = DidNotExist, absent
	}

	d.mu.Lock()
	d.entries.setAbsent(name)
	d.pending.deregisterDeletion(name, del)
	d.pending.deregisterCreation(name, cre)
	d.mu.Unlock()

	del.resolve(res)
	cre.resolve(creation{})
	return outcome, nil
}
