package asset

import "sync"

// Assets stores loaded values of one type by handle
type Assets[T any] struct {
	mu     sync.RWMutex
	values map[Handle]*T
}

// NewAssets creates an empty collection
func NewAssets[T any]() *Assets[T] {
	return &Assets[T]{values: make(map[Handle]*T)}
}

// Add stores v under a fresh handle
func (a *Assets[T]) Add(v T) Handle {
	h := NewHandle()
	a.Insert(h, v)
	return h
}

// Insert stores v under h, replacing any previous value
func (a *Assets[T]) Insert(h Handle, v T) {
	a.mu.Lock()
	a.values[h] = &v
	a.mu.Unlock()
}

// Get returns a copy of the value stored under h
func (a *Assets[T]) Get(h Handle) (T, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var zero T
	v, ok := a.values[h]
	if !ok {
		return zero, false
	}
	return *v, true
}

// GetMut returns the stored value for in-place modification
func (a *Assets[T]) GetMut(h Handle) (*T, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.values[h]
	return v, ok
}

// Contains reports whether h has a value
func (a *Assets[T]) Contains(h Handle) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.values[h]
	return ok
}

// Remove deletes the value under h and returns it
func (a *Assets[T]) Remove(h Handle) (T, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var zero T
	v, ok := a.values[h]
	if !ok {
		return zero, false
	}
	delete(a.values, h)
	return *v, true
}

// Len returns the number of stored values
func (a *Assets[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.values)
}
