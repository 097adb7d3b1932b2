package apiclient

import "context"

type Result[T any] struct {
	Value T
	Err   error
}

// Async runs fn on its own goroutine and delivers exactly one Result on the
// returned channel. The channel is buffered so an abandoned result never
// leaks the goroutine.
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		v, err := fn(ctx)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}
