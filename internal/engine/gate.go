package engine

import (
	"context"
	"sync"
	"sync/atomic"
)

// Gate is a one-shot readiness signal, such as "fonts loaded". Work that
// needs the resource waits on it.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Open releases all waiters. Extra calls are no-ops.
func (g *Gate) Open() {
	g.once.Do(func() { close(g.ch) })
}

func (g *Gate) IsOpen() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

// Wait blocks until the gate opens or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Once runs an initialiser a single time and hands every caller the first
// run's result.
type Once[T any] struct {
	once sync.Once
	done atomic.Bool
	val  T
	err  error
}

func (o *Once[T]) Do(fn func() (T, error)) (T, error) {
	o.once.Do(func() {
		o.val, o.err = fn()
		o.done.Store(true)
	})
	return o.val, o.err
}

// Done reports whether the initialiser has run.
func (o *Once[T]) Done() bool { return o.done.Load() }
