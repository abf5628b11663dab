package dirout

import "github.com/jmgilman/go/fs/core"

// entryKind is what a handle knows about one of its entries.
type entryKind int

const (
	kindUnknown entryKind = iota
	kindAbsent
	kindFile
	kindDir
)

func (k entryKind) String() string {
	switch k {
	case kindAbsent:
		return "absent"
	case kindFile:
		return "file"
	case kindDir:
		return "directory"
	default:
		return "unknown"
	}
}

// entry is the cached state of a name. dir is set only for kindDir.
type entry struct {
	kind entryKind
	dir  *Dir
}

// table maps entry names to cached state. A missing name is unknown.
//
// Every change advances the table's generation, so a listing taken at one
// generation can be merged without overwriting what was learned after it.
// Access is guarded by the owning Dir's mutex.
type table struct {
	entries map[string]entry

	gen       uint64
	changed   map[string]uint64
	cleared   uint64
	forgotten uint64
}

func newTable() table {
	return table{
		entries: make(map[string]entry),
		changed: make(map[string]uint64),
	}
}

func (t *table) get(name string) entry {
	return t.entries[name]
}

func (t *table) touch(name string) {
	t.gen++
	t.changed[name] = t.gen
}

func (t *table) setAbsent(name string) {
	t.entries[name] = entry{kind: kindAbsent}
	t.touch(name)
}

func (t *table) setFile(name string) {
	t.entries[name] = entry{kind: kindFile}
	t.touch(name)
}

func (t *table) setDir(name string, child *Dir) {
	t.entries[name] = entry{kind: kindDir, dir: child}
	t.touch(name)
}

// forget drops all knowledge of name, so the next operation probes the backend.
func (t *table) forget(name string) {
	delete(t.entries, name)
	t.touch(name)
	t.forgotten = t.gen
}

// reset records that the directory has no entries.
func (t *table) reset() {
	clear(t.entries)
	clear(t.changed)
	t.gen++
	t.cleared = t.gen
}

// generation returns the current generation.
func (t *table) generation() uint64 {
	return t.gen
}

// changedSince reports whether name changed after generation since.
func (t *table) changedSince(name string, since uint64) bool {
	return t.cleared > since || t.changed[name] > since
}

// merge applies a listing of the directory taken at generation since. Names
// that changed after since, or for which busy reports true, keep their state.
// A listed directory that is already known keeps its handle.
//
// It returns the listed names that were busy, and reports whether the table
// now records every existing entry.
func (t *table) merge(since uint64, listing []core.Entry, busy func(string) bool, child func(string) *Dir) (inFlight []string, complete bool) {
	listed := make(map[string]struct{}, len(listing))
	for _, e := range listing {
		listed[e.Name] = struct{}{}
		if busy(e.Name) {
			inFlight = append(inFlight, e.Name)
			continue
		}
		if t.changedSince(e.Name, since) {
			continue
		}
		cur := t.entries[e.Name]
		switch {
		case e.IsDir && cur.kind == kindDir:
		case e.IsDir:
			t.setDir(e.Name, child(e.Name))
		case cur.kind != kindFile:
			t.setFile(e.Name)
		}
	}

	for name, cur := range t.entries {
		if _, ok := listed[name]; ok || cur.kind == kindAbsent {
			continue
		}
		if t.changedSince(name, since) || busy(name) {
			continue
		}
		delete(t.entries, name)
		t.touch(name)
	}

	return inFlight, t.forgotten <= since
}

// present returns the names of entries known to exist.
func (t *table) present() []string {
	names := make([]string, 0, len(t.entries))
	for name, e := range t.entries {
		if e.kind == kindFile || e.kind == kindDir {
			names = append(names, name)
		}
	}
	return names
}

// presentSince returns the names of entries known to exist that have not
// changed after generation since.
func (t *table) presentSince(since uint64) []string {
	names := make([]string, 0, len(t.entries))
	for _, name := range t.present() {
		if !t.changedSince(name, since) {
			names = append(names, name)
		}
	}
	return names
}
