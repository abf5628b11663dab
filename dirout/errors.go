package dirout

import (
	"context"
	stderrors "errors"
	"io/fs"
	"net"
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fs/core"
)

var (
	// ErrExistsAsFile is returned when a directory is requested at a name
	// occupied by a file. It is never retried automatically.
	ErrExistsAsFile = errors.New(errors.CodeAlreadyExists, "entry exists as a file")

	// ErrInvalidName is returned for names that are empty, contain a path
	// separator, or are "." or "..".
	ErrInvalidName = errors.New(errors.CodeInvalidInput, "invalid entry name")
)

// validateName checks that name refers to a direct child.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.WrapWithContext(ErrInvalidName, errors.CodeInvalidInput, "invalid entry name", map[string]interface{}{
			"name": name,
		})
	}
	return nil
}

func existsAsFile(op, path string) error {
	return errors.WrapWithContext(ErrExistsAsFile, errors.CodeAlreadyExists, "cannot create directory", map[string]interface{}{
		"op":   op,
		"path": path,
	})
}

// classifyError maps a backend fault to a platform error coded by cause.
// The backend error stays in the chain for errors.Is and errors.As.
func classifyError(err error, op, path string) error {
	if err == nil {
		return nil
	}

	ctx := map[string]interface{}{
		"op":   op,
		"path": path,
	}

	var netErr net.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.WrapWithContext(err, errors.CodeTimeout, "backend call timed out", ctx)
	case stderrors.Is(err, fs.ErrPermission):
		return errors.WrapWithContext(err, errors.CodeForbidden, "permission denied", ctx)
	case stderrors.Is(err, core.ErrNotDir):
		return errors.WrapWithContext(err, errors.CodeAlreadyExists, "entry exists as a file", ctx)
	case stderrors.Is(err, fs.ErrExist):
		return errors.WrapWithContext(err, errors.CodeAlreadyExists, "entry already exists", ctx)
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.WrapWithContext(err, errors.CodeNotFound, "parent directory does not exist", ctx)
	case stderrors.As(err, &netErr):
		return errors.WrapWithContext(err, errors.CodeNetwork, "backend unreachable", ctx)
	default:
		return errors.WrapWithContext(err, errors.CodeFilesystem, "backend call failed", ctx)
	}
}
