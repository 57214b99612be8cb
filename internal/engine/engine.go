// Package engine implements the stateful business rules of the application:
// daily login streaks, habit completion tracking, todo rewards, and the
// role-based workspace permission model. Every operation takes an explicit
// principal (user id) and validates it against store state before writing.
package engine

import (
	"time"

	"github.com/julianstephens/cotask/internal/storage"
)

// Engine evaluates business rules against a storage provider. It holds no
// mutable state of its own; every request is independent and correctness
// under concurrency rests on the provider's conditional writes.
type Engine struct {
	store storage.Provider
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithNow overrides the wall clock, used by tests to simulate day rollovers.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine over the given storage provider.
func New(store storage.Provider, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
