package dirout

import (
	"context"
	stderrors "errors"
	"io/fs"
	"net"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fs/core"
)

func TestFuture(t *testing.T) {
	t.Run("many waiters see one value", func(t *testing.T) {
		f := newFuture[deletion]()
		results := make(chan deletion, 3)
		for i := 0; i < 3; i++ {
			go func() {
				v, err := f.wait(context.Background())
				assert.NoError(t, err)
				results <- v
			}()
		}
		f.resolve(deleted)
		for i := 0; i < 3; i++ {
			assert.Equal(t, deleted, <-results)
		}
	})

	t.Run("failure", func(t *testing.T) {
		f := newFuture[creation]()
		boom := stderrors.New("boom")
		f.fail(boom)

		_, err := f.wait(context.Background())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("waiter context", func(t *testing.T) {
		f := newFuture[deletion]()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.wait(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestTable(t *testing.T) {
	tbl := newTable()
	child := &Dir{path: "d"}

	tbl.setFile("f")
	tbl.setDir("d", child)
	tbl.setAbsent("gone")

	assert.Equal(t, kindUnknown, tbl.get("missing").kind)
	assert.Equal(t, kindFile, tbl.get("f").kind)
	assert.Same(t, child, tbl.get("d").dir)
	assert.Nil(t, tbl.get("gone").dir)

	present := tbl.present()
	sort.Strings(present)
	assert.Equal(t, []string{"d", "f"}, present)

	tbl.setAbsent("d")
	assert.Nil(t, tbl.get("d").dir, "absent entries drop their child handle")

	tbl.forget("f")
	assert.Equal(t, kindUnknown, tbl.get("f").kind)

	tbl.reset()
	assert.Empty(t, tbl.entries)
}

func TestTable_ChangedSince(t *testing.T) {
	tbl := newTable()
	tbl.setFile("a")
	since := tbl.generation()

	assert.False(t, tbl.changedSince("a", since))
	tbl.setAbsent("b")
	assert.True(t, tbl.changedSince("b", since))
	assert.False(t, tbl.changedSince("a", since))

	tbl.reset()
	assert.True(t, tbl.changedSince("a", since), "a reset changes every name")
}

func TestTable_Merge(t *testing.T) {
	idle := func(string) bool { return false }
	newChild := func(name string) *Dir { return &Dir{path: name} }

	t.Run("fills from listing", func(t *testing.T) {
		tbl := newTable()
		tbl.setFile("stale")

		inFlight, complete := tbl.merge(tbl.generation(), []core.Entry{
			{Name: "d", IsDir: true},
			{Name: "f"},
		}, idle, newChild)

		assert.True(t, complete)
		assert.Empty(t, inFlight)
		assert.Equal(t, kindDir, tbl.get("d").kind)
		assert.Equal(t, "d", tbl.get("d").dir.path)
		assert.Equal(t, kindFile, tbl.get("f").kind)
		assert.Equal(t, kindUnknown, tbl.get("stale").kind, "unlisted entries are dropped")
	})

	t.Run("keeps known child handles", func(t *testing.T) {
		tbl := newTable()
		child := &Dir{path: "d"}
		tbl.setDir("d", child)

		tbl.merge(tbl.generation(), []core.Entry{{Name: "d", IsDir: true}}, idle, newChild)
		assert.Same(t, child, tbl.get("d").dir)
	})

	t.Run("keeps changes made after the listing started", func(t *testing.T) {
		tbl := newTable()
		since := tbl.generation()
		created := &Dir{path: "new"}
		tbl.setDir("new", created)
		tbl.setAbsent("gone")

		_, complete := tbl.merge(since, []core.Entry{{Name: "gone"}}, idle, newChild)

		assert.True(t, complete)
		assert.Same(t, created, tbl.get("new").dir)
		assert.Equal(t, kindAbsent, tbl.get("gone").kind)
		assert.ElementsMatch(t, []string{"new"}, tbl.present())
		assert.Empty(t, tbl.presentSince(since))
	})

	t.Run("reports busy names without recording them", func(t *testing.T) {
		tbl := newTable()
		busy := func(name string) bool { return name == "x" }

		inFlight, _ := tbl.merge(tbl.generation(), []core.Entry{{Name: "x"}, {Name: "y"}}, busy, newChild)
		assert.Equal(t, []string{"x"}, inFlight)
		assert.Equal(t, kindUnknown, tbl.get("x").kind)
		assert.Equal(t, kindFile, tbl.get("y").kind)
	})

	t.Run("incomplete after a fault", func(t *testing.T) {
		tbl := newTable()
		since := tbl.generation()
		tbl.forget("x")

		_, complete := tbl.merge(since, []core.Entry{{Name: "x"}}, idle, newChild)
		assert.False(t, complete)
		assert.Equal(t, kindUnknown, tbl.get("x").kind)
	})
}

func TestRegistry_DeregisterOnlyOwnFuture(t *testing.T) {
	r := newRegistry()
	old := newFuture[deletion]()
	current := newFuture[deletion]()

	r.registerDeletion("x", old)
	r.registerDeletion("x", current)
	r.deregisterDeletion("x", old)

	got, ok := r.deletion("x")
	require.True(t, ok)
	assert.Same(t, current, got)

	r.deregisterDeletion("x", current)
	_, ok = r.deletion("x")
	assert.False(t, ok)

	c := newFuture[creation]()
	r.registerCreation("x", c)
	r.deregisterCreation("x", newFuture[creation]())
	_, ok = r.creation("x")
	assert.True(t, ok)
	assert.True(t, r.busy("x"))
	assert.False(t, r.busy("y"))
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "will_exist", willExist.String())
	assert.Equal(t, "absent", absent.String())
	assert.Equal(t, "deleted", deleted.String())

	assert.Equal(t, "was_deleted", creation{}.String())
	assert.Equal(t, "created", creation{dir: &Dir{}}.String())
	assert.Equal(t, "preserved", creation{dir: &Dir{}, preserved: true}.String())

	assert.Equal(t, "directory", kindDir.String())
	assert.Equal(t, "unknown", kindUnknown.String())
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorCode
	}{
		{"permission", &fs.PathError{Op: "remove", Path: "x", Err: fs.ErrPermission}, errors.CodeForbidden},
		{"exists", &fs.PathError{Op: "mkdir", Path: "x", Err: fs.ErrExist}, errors.CodeAlreadyExists},
		{"not a directory", core.PathError("mkdir", "x", core.ErrNotDir), errors.CodeAlreadyExists},
		{"missing parent", core.PathError("mkdir", "x/y", fs.ErrNotExist), errors.CodeNotFound},
		{"deadline", context.DeadlineExceeded, errors.CodeTimeout},
		{"network", &net.OpError{Op: "dial", Err: stderrors.New("connection refused")}, errors.CodeNetwork},
		{"other", stderrors.New("io error"), errors.CodeFilesystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyError(tt.err, "op", "path")
			assert.Equal(t, tt.want, errors.GetCode(err))
			assert.True(t, errors.Is(err, tt.err))
		})
	}

	assert.NoError(t, classifyError(nil, "op", "path"))
	assert.True(t, errors.IsRetryable(classifyError(&net.OpError{Op: "dial", Err: stderrors.New("refused")}, "op", "path")))
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"a", "a.txt", ".hidden", "..."} {
		assert.NoError(t, validateName(name), name)
	}
	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "/"} {
		err := validateName(name)
		assert.True(t, errors.Is(err, ErrInvalidName), name)
	}
}
