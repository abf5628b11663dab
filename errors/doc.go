// Package errors provides the structured error type shared by the dirout
// packages.
//
// Every error carries an ErrorCode for categorization and an
// ErrorClassification that tells callers whether retrying could help.
// Errors wrap their cause, so errors.Is and errors.As from the standard
// library keep working through the chain:
//
//	err := errors.Wrap(fs.ErrPermission, errors.CodeForbidden, "remove entry")
//	stderrors.Is(err, fs.ErrPermission) // true
//	errors.GetCode(err)                 // CodeForbidden
//
// Context metadata (paths, operation names) is attached with WithContext or
// WrapWithContext and is copied on every call, so a PlatformError is never
// mutated after construction.
package errors
