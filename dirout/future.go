package dirout

import "context"

// future is a single-assignment result shared by any number of waiters.
type future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *future[T] {
	return &future[T]{done: make(chan struct{})}
}

// resolve and fail must be called exactly once, by the initiator.
func (f *future[T]) resolve(v T) {
	f.val = v
	close(f.done)
}

func (f *future[T]) fail(err error) {
	f.err = err
	close(f.done)
}

func (f *future[T]) wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
