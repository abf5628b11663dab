package fstest

import (
	"context"
	"testing"

	"github.com/jmgilman/go/fs/core"
)

func mustWrite(t *testing.T, filesystem core.FS, name, data string) {
	t.Helper()
	if err := filesystem.WriteFile(context.Background(), name, []byte(data)); err != nil {
		t.Fatalf("WriteFile(%s): setup failed: %v", name, err)
	}
}

func mustMkdirAll(t *testing.T, filesystem core.FS, name string) {
	t.Helper()
	if err := filesystem.MkdirAll(context.Background(), name); err != nil {
		t.Fatalf("MkdirAll(%s): setup failed: %v", name, err)
	}
}

func mustExist(t *testing.T, filesystem core.FS, name string) {
	t.Helper()
	ok, err := filesystem.Exists(context.Background(), name)
	if err != nil {
		t.Fatalf("Exists(%s): %v", name, err)
	}
	if !ok {
		t.Errorf("Exists(%s) = false, want true", name)
	}
}

func mustNotExist(t *testing.T, filesystem core.FS, name string) {
	t.Helper()
	ok, err := filesystem.Exists(context.Background(), name)
	if err != nil {
		t.Fatalf("Exists(%s): %v", name, err)
	}
	if ok {
		t.Errorf("Exists(%s) = true, want false", name)
	}
}
