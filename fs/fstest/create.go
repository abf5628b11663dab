package fstest

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fs/core"
)

// TestMkdirWithConfig tests single-directory creation and its conflict errors.
func TestMkdirWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	const group = "Mkdir"

	config.run(t, group, "Create", func(t *testing.T) {
		ctx := context.Background()
		if err := filesystem.Mkdir(ctx, "mk-new"); err != nil {
			t.Fatalf("Mkdir(mk-new): got error %v, want nil", err)
		}
		entries, err := filesystem.ReadDir(ctx, ".")
		if err != nil {
			t.Fatalf("ReadDir(.): %v", err)
		}
		if !containsDir(entries, "mk-new") {
			t.Errorf("ReadDir(.) = %v, want directory mk-new", entries)
		}
	})

	config.run(t, group, "ExistingDirectory", func(t *testing.T) {
		ctx := context.Background()
		if err := filesystem.Mkdir(ctx, "mk-twice"); err != nil {
			t.Fatalf("Mkdir(mk-twice): setup failed: %v", err)
		}
		err := filesystem.Mkdir(ctx, "mk-twice")
		if !errors.Is(err, fs.ErrExist) {
			t.Errorf("second Mkdir(mk-twice): got error %v, want fs.ErrExist", err)
		}
	})

	config.run(t, group, "ExistingFile", func(t *testing.T) {
		mustWrite(t, filesystem, "mk-file", "x")
		err := filesystem.Mkdir(context.Background(), "mk-file")
		if !errors.Is(err, core.ErrNotDir) {
			t.Errorf("Mkdir(mk-file): got error %v, want core.ErrNotDir", err)
		}
	})

	config.run(t, group, "Nested", func(t *testing.T) {
		ctx := context.Background()
		mustMkdirAll(t, filesystem, "mk-parent")
		if err := filesystem.Mkdir(ctx, "mk-parent/child"); err != nil {
			t.Fatalf("Mkdir(mk-parent/child): got error %v, want nil", err)
		}
		entries, err := filesystem.ReadDir(ctx, "mk-parent")
		if err != nil {
			t.Fatalf("ReadDir(mk-parent): %v", err)
		}
		if !containsDir(entries, "child") {
			t.Errorf("ReadDir(mk-parent) = %v, want directory child", entries)
		}
	})

	config.run(t, group, "MissingParent", func(t *testing.T) {
		if config.ImplicitParentDirs {
			t.Skip("provider creates parents implicitly")
		}
		err := filesystem.Mkdir(context.Background(), "mk-nowhere/child")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Mkdir(mk-nowhere/child): got error %v, want fs.ErrNotExist", err)
		}
	})
}

func containsDir(entries []core.Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name && e.IsDir {
			return true
		}
	}
	return false
}
