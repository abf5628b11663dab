package fstest

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fs/core"
)

// TestRemoveAllWithConfig tests recursive removal and its existence report.
func TestRemoveAllWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	const group = "RemoveAll"

	config.run(t, group, "SingleFile", func(t *testing.T) {
		ctx := context.Background()
		mustWrite(t, filesystem, "rm-file.txt", "content")

		existed, err := filesystem.RemoveAll(ctx, "rm-file.txt")
		if err != nil {
			t.Fatalf("RemoveAll(rm-file.txt): got error %v, want nil", err)
		}
		if !existed {
			t.Errorf("RemoveAll(rm-file.txt): existed = false, want true")
		}
		mustNotExist(t, filesystem, "rm-file.txt")
	})

	config.run(t, group, "DirectoryTree", func(t *testing.T) {
		ctx := context.Background()
		mustMkdirAll(t, filesystem, "rm-tree/child/grandchild")
		mustWrite(t, filesystem, "rm-tree/a.txt", "a")
		mustWrite(t, filesystem, "rm-tree/child/b.txt", "b")
		mustWrite(t, filesystem, "rm-tree/child/grandchild/c.txt", "c")

		existed, err := filesystem.RemoveAll(ctx, "rm-tree")
		if err != nil {
			t.Fatalf("RemoveAll(rm-tree): got error %v, want nil", err)
		}
		if !existed {
			t.Errorf("RemoveAll(rm-tree): existed = false, want true")
		}
		mustNotExist(t, filesystem, "rm-tree")
		mustNotExist(t, filesystem, "rm-tree/child/b.txt")
	})

	config.run(t, group, "Missing", func(t *testing.T) {
		existed, err := filesystem.RemoveAll(context.Background(), "rm-missing")
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("RemoveAll(rm-missing): got error %v, want nil or fs.ErrNotExist", err)
		}
		if existed {
			t.Errorf("RemoveAll(rm-missing): existed = true, want false")
		}
	})

	config.run(t, group, "LeavesSiblings", func(t *testing.T) {
		ctx := context.Background()
		mustWrite(t, filesystem, "rm-sib/keep.txt", "keep")
		mustWrite(t, filesystem, "rm-sib/drop.txt", "drop")
		// A sibling sharing the name as a prefix must survive.
		mustWrite(t, filesystem, "rm-sib/drop.txt.bak", "bak")

		if _, err := filesystem.RemoveAll(ctx, "rm-sib/drop.txt"); err != nil {
			t.Fatalf("RemoveAll(rm-sib/drop.txt): got error %v", err)
		}
		mustExist(t, filesystem, "rm-sib/keep.txt")
		mustExist(t, filesystem, "rm-sib/drop.txt.bak")
		mustNotExist(t, filesystem, "rm-sib/drop.txt")
	})
}

// TestEmptyDirWithConfig tests clearing a directory's children.
func TestEmptyDirWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	const group = "EmptyDir"

	config.run(t, group, "RemovesChildren", func(t *testing.T) {
		ctx := context.Background()
		mustMkdirAll(t, filesystem, "empty-me/sub")
		mustWrite(t, filesystem, "empty-me/a.txt", "a")
		mustWrite(t, filesystem, "empty-me/sub/b.txt", "b")

		if err := filesystem.EmptyDir(ctx, "empty-me"); err != nil {
			t.Fatalf("EmptyDir(empty-me): got error %v, want nil", err)
		}

		entries, err := filesystem.ReadDir(ctx, "empty-me")
		if err != nil {
			t.Fatalf("ReadDir(empty-me) after EmptyDir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("ReadDir(empty-me) after EmptyDir: got %d entries, want 0", len(entries))
		}
		if !config.VirtualDirectories {
			mustExist(t, filesystem, "empty-me")
		}
	})

	config.run(t, group, "AlreadyEmpty", func(t *testing.T) {
		ctx := context.Background()
		mustMkdirAll(t, filesystem, "empty-already")
		if err := filesystem.EmptyDir(ctx, "empty-already"); err != nil {
			t.Fatalf("EmptyDir(empty-already): got error %v, want nil", err)
		}
	})

	config.run(t, group, "Missing", func(t *testing.T) {
		err := filesystem.EmptyDir(context.Background(), "empty-missing")
		if config.VirtualDirectories {
			if err != nil {
				t.Errorf("EmptyDir(empty-missing): got error %v, want nil for virtual directories", err)
			}
			return
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("EmptyDir(empty-missing): got error %v, want fs.ErrNotExist", err)
		}
	})
}
