package dirout

import "sync/atomic"

// Stats counts the work done by a handle tree.
type Stats struct {
	// Removes is the number of backend RemoveAll calls.
	Removes int64
	// Mkdirs is the number of backend Mkdir calls.
	Mkdirs int64
	// Empties is the number of backend EmptyDir calls.
	Empties int64
	// Listings is the number of backend ReadDir calls.
	Listings int64
	// Joins is the number of calls that waited on another caller's
	// in-flight operation instead of calling the backend.
	Joins int64
}

// BackendCalls returns the total number of backend calls.
func (s Stats) BackendCalls() int64 {
	return s.Removes + s.Mkdirs + s.Empties + s.Listings
}

type counters struct {
	removes  atomic.Int64
	mkdirs   atomic.Int64
	empties  atomic.Int64
	listings atomic.Int64
	joins    atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Removes:  c.removes.Load(),
		Mkdirs:   c.mkdirs.Load(),
		Empties:  c.empties.Load(),
		Listings: c.listings.Load(),
		Joins:    c.joins.Load(),
	}
}
