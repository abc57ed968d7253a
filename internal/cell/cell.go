// Package cell provides a single-value reactive slot.
//
// A Cell holds one value, lets any goroutine replace it, and notifies exactly
// one observer after every write. It is the unit the bridge binds wallet
// manager pushes to.
package cell

import "sync"

// Cell is a goroutine-safe slot holding a value of type T.
type Cell[T any] struct {
	mu       sync.Mutex
	value    T
	version  uint64
	observer *observer[T]

	// notify serializes observer calls so a single writer's pushes are
	// observed in the order they were stored.
	notify sync.Mutex
}

type observer[T any] struct {
	fn func(T)
}

// New creates a cell holding initial.
func New[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Version returns the number of writes the cell has seen.
func (c *Cell[T]) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Set stores v and notifies the observer. Equal values still notify.
func (c *Cell[T]) Set(v T) {
	c.notify.Lock()
	defer c.notify.Unlock()

	c.mu.Lock()
	c.value = v
	c.version++
	obs := c.observer
	c.mu.Unlock()

	if obs != nil {
		obs.fn(v)
	}
}

// Setter returns Set as a function value.
func (c *Cell[T]) Setter() func(T) {
	return c.Set
}

// Observe registers fn as the cell's only observer, replacing any previous
// one. The returned cancel func removes fn if it is still registered.
// fn runs on the writer's goroutine and must not write to the same cell.
func (c *Cell[T]) Observe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	obs := &observer[T]{fn: fn}

	c.mu.Lock()
	c.observer = obs
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.observer == obs {
			c.observer = nil
		}
	}
}
