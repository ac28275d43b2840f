package transport

import "context"

// Pending is the eventual result of an in-flight call.
type Pending[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go runs fn in a new goroutine and returns a handle to its result. fn
// receives ctx unchanged, so cancelling ctx cancels the call.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.value, p.err = fn(ctx)
	}()
	return p
}

// Done is closed once the result is available.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call finishes or ctx is done. Giving up on ctx does
// not cancel the call itself.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
