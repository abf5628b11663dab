package dirout_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/dirout"
	"github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"
)

// Backend operation names used by gatedBackend.
const (
	opRemoveAll = "RemoveAll"
	opMkdir     = "Mkdir"
	opEmptyDir  = "EmptyDir"
	opReadDir   = "ReadDir"

	afterSuffix = ":after"
)

// gatedBackend wraps a core.FS so tests can hold backend calls open and
// inject failures.
type gatedBackend struct {
	core.FS

	mu       sync.Mutex
	gates    map[string]chan struct{}
	failures map[string]error
	entered  chan string
}

func newGatedBackend() *gatedBackend {
	return &gatedBackend{
		FS:       billy.NewMemory(),
		gates:    make(map[string]chan struct{}),
		failures: make(map[string]error),
		entered:  make(chan string, 64),
	}
}

// hold blocks every call to op until the returned release is called.
func (b *gatedBackend) hold(op string) (release func()) {
	return b.gate(op)
}

// holdAfter lets every call to op complete on the backend, then blocks its
// return until the returned release is called.
func (b *gatedBackend) holdAfter(op string) (release func()) {
	return b.gate(op + afterSuffix)
}

func (b *gatedBackend) gate(key string) (release func()) {
	gate := make(chan struct{})
	b.mu.Lock()
	b.gates[key] = gate
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.gates, key)
			b.mu.Unlock()
			close(gate)
		})
	}
}

// failOn makes op fail with err for name, or for every name if name is empty.
func (b *gatedBackend) failOn(op, name string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op+":"+name] = err
}

func (b *gatedBackend) clearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]error)
}

func (b *gatedBackend) enter(op, name string) error {
	b.mu.Lock()
	gate := b.gates[op]
	err := b.failures[op+":"+name]
	if err == nil {
		err = b.failures[op+":"]
	}
	b.mu.Unlock()

	if gate != nil {
		b.entered <- op
		<-gate
	}
	return err
}

// leave blocks a completed call to op while it is held by holdAfter.
func (b *gatedBackend) leave(op string) {
	b.mu.Lock()
	gate := b.gates[op+afterSuffix]
	b.mu.Unlock()

	if gate != nil {
		b.entered <- op
		<-gate
	}
}

// waitEntered waits until a held call to op has started, or has completed
// when held by holdAfter.
func (b *gatedBackend) waitEntered(t *testing.T, op string) {
	t.Helper()
	select {
	case got := <-b.entered:
		require.Equal(t, op, got, "unexpected held backend call")
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s to start", op)
	}
}

func (b *gatedBackend) RemoveAll(ctx context.Context, name string) (bool, error) {
	if err := b.enter(opRemoveAll, name); err != nil {
		return false, err
	}
	defer b.leave(opRemoveAll)
	return b.FS.RemoveAll(ctx, name)
}

func (b *gatedBackend) Mkdir(ctx context.Context, name string) error {
	if err := b.enter(opMkdir, name); err != nil {
		return err
	}
	defer b.leave(opMkdir)
	return b.FS.Mkdir(ctx, name)
}

func (b *gatedBackend) EmptyDir(ctx context.Context, name string) error {
	if err := b.enter(opEmptyDir, name); err != nil {
		return err
	}
	defer b.leave(opEmptyDir)
	return b.FS.EmptyDir(ctx, name)
}

func (b *gatedBackend) ReadDir(ctx context.Context, name string) ([]core.Entry, error) {
	if err := b.enter(opReadDir, name); err != nil {
		return nil, err
	}
	defer b.leave(opReadDir)
	return b.FS.ReadDir(ctx, name)
}

// result carries the return values of an operation run in a goroutine.
type result[T any] struct {
	val T
	err error
}

func async[T any](fn func() (T, error)) <-chan result[T] {
	ch := make(chan result[T], 1)
	go func() {
		val, err := fn()
		ch <- result[T]{val: val, err: err}
	}()
	return ch
}

func await[T any](t *testing.T, ch <-chan result[T]) (T, error) {
	t.Helper()
	select {
	case r := <-ch:
		return r.val, r.err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for operation")
		var zero T
		return zero, nil
	}
}

// waitJoins waits until n calls on the tree have joined an in-flight operation.
func waitJoins(t *testing.T, d *dirout.Dir, n int64) {
	t.Helper()
	require.Eventually(t, func() bool {
		return d.Stats().Joins >= n
	}, 5*time.Second, time.Millisecond, "expected %d joined calls", n)
}

func write(t *testing.T, fs core.FS, name, data string) {
	t.Helper()
	require.NoError(t, fs.WriteFile(context.Background(), name, []byte(data)))
}

func mkdirAll(t *testing.T, fs core.FS, name string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(context.Background(), name))
}

func exists(t *testing.T, fs core.FS, name string) bool {
	t.Helper()
	ok, err := fs.Exists(context.Background(), name)
	require.NoError(t, err)
	return ok
}
