// Package errs provides error handling utilities for the minio filesystem.
package errs

import (
	"fmt"
	"io/fs"

	"github.com/minio/minio-go/v7"
)

// Translate converts MinIO errors to stdlib fs errors so the not-found
// condition survives the trip through the backend contract.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fs.ErrNotExist
	case "AccessDenied":
		return fs.ErrPermission
	}

	return fmt.Errorf("minio: %w", err)
}

// IsNotFound reports whether err is a MinIO missing-object response.
func IsNotFound(err error) bool {
	return Translate(err) == fs.ErrNotExist
}
