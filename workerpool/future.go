// File: workerpool/future.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package workerpool

import "context"

// Future is a single-assignment result of a pooled task.
type Future[R any] struct {
	done chan struct{}
	val  R
	err  error
}

func newFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// complete publishes the result. Called exactly once, by the worker.
func (f *Future[R]) complete(v R, err error) {
	f.val = v
	f.err = err
	close(f.done)
}

// Done returns a channel closed when the result is available.
func (f *Future[R]) Done() <-chan struct{} { return f.done }

// Get blocks until the task has run and returns its result.
func (f *Future[R]) Get() (R, error) {
	<-f.done
	return f.val, f.err
}

// GetContext is Get with a caller-supplied deadline. The task itself is not
// cancelled; it still runs to completion and the result stays readable.
func (f *Future[R]) GetContext(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
