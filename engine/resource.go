package engine

import (
	"reflect"
	"sync"
)

// ResourceStore holds world singletons keyed by their Go type
// Resources are stored as pointers so every system shares one instance
type ResourceStore struct {
	mu    sync.RWMutex
	items map[reflect.Type]any
}

func NewResourceStore() *ResourceStore {
	return &ResourceStore{items: make(map[reflect.Type]any)}
}

// AddResource stores r under T, replacing any previous value
func AddResource[T any](rs *ResourceStore, r T) {
	rs.mu.Lock()
	rs.items[reflect.TypeFor[T]()] = r
	rs.mu.Unlock()
}

// GetResource looks up the resource stored under T
func GetResource[T any](rs *ResourceStore) (T, bool) {
	rs.mu.RLock()
	v, ok := rs.items[reflect.TypeFor[T]()]
	rs.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// MustGetResource is GetResource for resources inserted by plugins a system
// depends on; a missing one is a wiring bug and panics
func MustGetResource[T any](rs *ResourceStore) T {
	r, ok := GetResource[T](rs)
	if !ok {
		panic("required resource not found: " + reflect.TypeFor[T]().String())
	}
	return r
}

func RemoveResource[T any](rs *ResourceStore) {
	rs.mu.Lock()
	delete(rs.items, reflect.TypeFor[T]())
	rs.mu.Unlock()
}
