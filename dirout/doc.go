// Package dirout manages the contents of an output directory through a
// caching handle that coalesces concurrent operations.
//
// A Dir remembers what it has learned about each of its entries (absent,
// a file, or a directory with its own child Dir) and keeps a registry of
// in-flight operations per name. A second caller asking for the same thing
// joins the first caller's backend call instead of issuing its own, and a
// caller with a conflicting intent waits for the pending call and then acts
// on its result:
//
//   - Remove after a pending CreateDir always performs a physical delete.
//   - CreateDir after a pending Remove always creates a fresh directory.
//   - Two concurrent Removes of one name issue a single backend call.
//
// Basic usage:
//
//	backend := billy.NewLocal("build")
//	out := dirout.New(backend, ".")
//
//	if err := out.Empty(ctx); err != nil {
//	    return err
//	}
//	reports, err := out.CreateDir(ctx, "reports")
//	if err != nil {
//	    return err
//	}
//
// # Errors
//
// A backend "not found" is an expected outcome (DidNotExist). Every other
// backend failure is a fault: it is returned to the initiator and to every
// caller joined on the same operation, and the name's cached state is
// forgotten so the next call probes the backend again. Faults are
// *errors.PlatformError values coded by cause; creating a directory where a
// file exists fails with ErrExistsAsFile.
//
// # Concurrency
//
// All methods are safe for concurrent use. Operations on different names
// run independently. Callers joined on another caller's operation stop
// waiting when their own context is done; the backend call keeps running
// under the initiator's context.
package dirout
