package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
//
// Example:
//
//	if errors.Is(err, dirout.ErrExistsAsFile) {
//	    // a plain file occupies the name
//	}
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
//
// Example:
//
//	var platformErr errors.PlatformError
//	if errors.As(err, &platformErr) {
//	    path := platformErr.Context()["path"]
//	}
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCode extracts the ErrorCode of the outermost PlatformError in err's
// chain. Returns CodeUnknown if err is nil or carries no PlatformError.
//
// Example:
//
//	if errors.GetCode(err) == errors.CodeAlreadyExists {
//	    // the name is taken
//	}
func GetCode(err error) ErrorCode {
	var platformErr PlatformError
	if err != nil && stderrors.As(err, &platformErr) {
		return platformErr.Code()
	}
	return CodeUnknown
}

// GetClassification extracts the classification of the outermost
// PlatformError in err's chain. Returns ClassificationPermanent if err is nil
// or carries no PlatformError, so unknown failures are never retried.
//
// Example:
//
//	if errors.GetClassification(err) == errors.ClassificationRetryable {
//	    // the backend may succeed on a later attempt
//	}
func GetClassification(err error) ErrorClassification {
	var platformErr PlatformError
	if err != nil && stderrors.As(err, &platformErr) {
		return platformErr.Classification()
	}
	return ClassificationPermanent
}

// IsRetryable returns true if err is classified as retryable.
// Returns false if err is nil or not a PlatformError.
//
// Example:
//
//	if _, err := dir.Remove(ctx, name); errors.IsRetryable(err) {
//	    time.Sleep(backoff)
//	    _, err = dir.Remove(ctx, name)
//	}
func IsRetryable(err error) bool {
	return GetClassification(err).IsRetryable()
}
