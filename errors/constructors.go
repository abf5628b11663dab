package errors

import (
	stderrors "errors"
	"fmt"
)

// New creates a new PlatformError with the given code and message.
// The classification is derived from the code.
//
// Example:
//
//	var ErrExistsAsFile = errors.New(errors.CodeAlreadyExists, "entry exists as a file")
func New(code ErrorCode, message string) PlatformError {
	return &platformError{
		code:           code,
		classification: classificationFor(code),
		message:        message,
	}
}

// Newf creates a new PlatformError with a formatted message.
// The classification is derived from the code.
//
// Example:
//
//	err := errors.Newf(errors.CodeInvalidInput, "invalid entry name %q", name)
func Newf(code ErrorCode, format string, args ...interface{}) PlatformError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. The cause stays reachable through
// errors.Is and errors.As. If err is already a PlatformError its
// classification is preserved.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := backend.Mkdir(ctx, path); err != nil {
//	    return errors.Wrap(err, errors.CodeFilesystem, "create directory")
//	}
func Wrap(err error, code ErrorCode, message string) PlatformError {
	return WrapWithContext(err, code, message, nil)
}

// Wrapf wraps err with a formatted message.
//
// Returns nil if err is nil.
//
// Example:
//
//	return errors.Wrapf(err, errors.CodeInvalidConfig, "load %s", path)
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) PlatformError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps err and attaches context metadata in one call.
// The context map is copied.
//
// Example:
//
//	return errors.WrapWithContext(err, errors.CodeFilesystem, "remove entry", map[string]interface{}{
//	    "path": path,
//	})
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}

	classification := classificationFor(code)
	var platformErr PlatformError
	if stderrors.As(err, &platformErr) {
		classification = platformErr.Classification()
	}

	return &platformError{
		code:           code,
		classification: classification,
		message:        message,
		context:        copyContext(ctx),
		cause:          err,
	}
}

// WithContext returns a copy of err with one more context field. A plain
// error is first converted to a PlatformError with CodeUnknown.
//
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "backend", "minio")
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}

	var platformErr PlatformError
	if !stderrors.As(err, &platformErr) {
		platformErr = &platformError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        err.Error(),
			cause:          err,
		}
	}

	ctx := platformErr.Context()
	if ctx == nil {
		ctx = make(map[string]interface{}, 1)
	}
	ctx[key] = value

	return &platformError{
		code:           platformErr.Code(),
		classification: platformErr.Classification(),
		message:        platformErr.Message(),
		context:        ctx,
		cause:          platformErr.Unwrap(),
	}
}
