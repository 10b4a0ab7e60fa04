package oauth

import (
	"context"
	"sync"
)

// Future is a single-resolution sign-in result. It adapts a
// callback-style completion to one await point: the first Resolve or
// Reject wins, every later call is a no-op.
type Future struct {
	once sync.Once
	done chan struct{}

	cred *Credential
	err  error
}

// NewFuture returns an unresolved future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolve fulfils the future with a credential. It reports whether this
// call was the one that resolved it.
func (f *Future) Resolve(cred *Credential) bool {
	won := false
	f.once.Do(func() {
		f.cred = cred
		close(f.done)
		won = true
	})
	return won
}

// Reject fails the future. A nil err degrades to the unknown-error
// fallback so awaiting callers never observe a nil failure.
func (f *Future) Reject(err error) bool {
	if err == nil {
		err = Unknown("")
	}
	won := false
	f.once.Do(func() {
		f.err = err
		close(f.done)
		won = true
	})
	return won
}

// Done is closed once the future has been resolved or rejected.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future is resolved or ctx is done. Awaiting a
// resolved future returns immediately; Await may be called any number
// of times.
func (f *Future) Await(ctx context.Context) (*Credential, error) {
	select {
	case <-f.done:
		return f.cred, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
