package uff

// Cell holds a value that is computed at most once. The outcome of the first
// computation, including an error, is kept and returned by every later Get.
// A Cell is not safe for concurrent use.
type Cell[T any] struct {
	done bool
	val  T
	err  error
}

// Get returns the cached outcome, calling compute the first time.
func (c *Cell[T]) Get(compute func() (T, error)) (T, error) {
	if !c.done {
		c.val, c.err = compute()
		c.done = true
	}
	return c.val, c.err
}

// Set stores v, replacing any cached outcome.
func (c *Cell[T]) Set(v T) {
	c.val, c.err, c.done = v, nil, true
}

// Peek returns the cached value without computing it. ok is false if the
// cell has not been resolved or resolved to an error.
func (c *Cell[T]) Peek() (v T, ok bool) {
	if !c.done || c.err != nil {
		return v, false
	}
	return c.val, true
}

// Resolved reports whether Get or Set has been called.
func (c *Cell[T]) Resolved() bool { return c.done }
