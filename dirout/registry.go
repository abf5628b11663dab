package dirout

// deletion is the result a pending deletion future resolves to.
type deletion int

const (
	// willExist: the operation leaves the entry present; a remover must
	// still delete it.
	willExist deletion = iota
	// absent: the entry was confirmed missing.
	absent
	// deleted: the entry was physically deleted.
	deleted
)

func (d deletion) String() string {
	switch d {
	case absent:
		return "absent"
	case deleted:
		return "deleted"
	default:
		return "will_exist"
	}
}

// creation is the result a pending creation future resolves to.
// A nil dir means the slot was vacated by a removal.
type creation struct {
	dir       *Dir
	preserved bool
}

func (c creation) String() string {
	switch {
	case c.dir == nil:
		return "was_deleted"
	case c.preserved:
		return "preserved"
	default:
		return "created"
	}
}

// registry holds at most one pending future per name and intent.
// Access is guarded by the owning Dir's mutex.
type registry struct {
	deletions map[string]*future[deletion]
	creations map[string]*future[creation]
}

func newRegistry() registry {
	return registry{
		deletions: make(map[string]*future[deletion]),
		creations: make(map[string]*future[creation]),
	}
}

func (r *registry) deletion(name string) (*future[deletion], bool) {
	f, ok := r.deletions[name]
	return f, ok
}

func (r *registry) creation(name string) (*future[creation], bool) {
	f, ok := r.creations[name]
	return f, ok
}

func (r *registry) registerDeletion(name string, f *future[deletion]) {
	r.deletions[name] = f
}

func (r *registry) registerCreation(name string, f *future[creation]) {
	r.creations[name] = f
}

// deregisterDeletion removes f only if it is still the registered future.
func (r *registry) deregisterDeletion(name string, f *future[deletion]) {
	if r.deletions[name] == f {
		delete(r.deletions, name)
	}
}

// deregisterCreation removes f only if it is still the registered future.
func (r *registry) deregisterCreation(name string, f *future[creation]) {
	if r.creations[name] == f {
		delete(r.creations, name)
	}
}

// busy reports whether any operation on name is in flight.
func (r *registry) busy(name string) bool {
	_, del := r.deletions[name]
	_, cre := r.creations[name]
	return del || cre
}
