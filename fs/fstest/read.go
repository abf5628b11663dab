package fstest

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fs/core"
)

// TestReadDirWithConfig tests one-level listing with entry kinds.
func TestReadDirWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	const group = "ReadDir"

	config.run(t, group, "KindsAndOrder", func(t *testing.T) {
		mustMkdirAll(t, filesystem, "ls/zeta")
		mustMkdirAll(t, filesystem, "ls/alpha/deep")
		mustWrite(t, filesystem, "ls/beta.txt", "b")
		mustWrite(t, filesystem, "ls/alpha/deep/hidden.txt", "h")

		entries, err := filesystem.ReadDir(context.Background(), "ls")
		if err != nil {
			t.Fatalf("ReadDir(ls): got error %v, want nil", err)
		}

		want := []core.Entry{
			{Name: "alpha", IsDir: true},
			{Name: "beta.txt", IsDir: false},
			{Name: "zeta", IsDir: true},
		}
		if len(entries) != len(want) {
			t.Fatalf("ReadDir(ls) = %v, want %v", entries, want)
		}
		for i := range want {
			if entries[i] != want[i] {
				t.Errorf("ReadDir(ls)[%d] = %+v, want %+v", i, entries[i], want[i])
			}
		}
	})

	config.run(t, group, "Missing", func(t *testing.T) {
		entries, err := filesystem.ReadDir(context.Background(), "ls-missing")
		if config.VirtualDirectories {
			if err != nil || len(entries) != 0 {
				t.Errorf("ReadDir(ls-missing) = (%v, %v), want no entries and nil", entries, err)
			}
			return
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("ReadDir(ls-missing): got error %v, want fs.ErrNotExist", err)
		}
	})

	config.run(t, group, "Exists", func(t *testing.T) {
		ctx := context.Background()
		mustWrite(t, filesystem, "exists/file.txt", "x")

		ok, err := filesystem.Exists(ctx, "exists/file.txt")
		if err != nil || !ok {
			t.Errorf("Exists(exists/file.txt) = (%v, %v), want (true, nil)", ok, err)
		}
		ok, err = filesystem.Exists(ctx, "exists/nope.txt")
		if err != nil || ok {
			t.Errorf("Exists(exists/nope.txt) = (%v, %v), want (false, nil)", ok, err)
		}
	})
}
