package engine

import (
	"slices"
	"sync"

	"github.com/lixenwraith/cellscene/core"
)

// AnyStore is the type-erased view World uses to destroy entities and clear
// stores without knowing their component type
type AnyStore interface {
	Remove(e core.Entity)
	Has(e core.Entity) bool
	Count() int
	Clear()
}

// QueryableStore adds entity listing for QueryBuilder
type QueryableStore interface {
	AnyStore
	All() []core.Entity
}

// Store holds one component type keyed by entity
// order keeps insertion order; systems iterate in it
type Store[T any] struct {
	mu    sync.RWMutex
	data  map[core.Entity]T
	order []core.Entity
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{data: make(map[core.Entity]T)}
}

// Set adds or replaces the component of e
func (s *Store[T]) Set(e core.Entity, val T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[e]; !ok {
		s.order = append(s.order, e)
	}
	s.data[e] = val
}

func (s *Store[T]) Get(e core.Entity) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[e]
	return val, ok
}

// Update edits the component of e in place under the store lock
// Reports false, without calling fn, when e has none
func (s *Store[T]) Update(e core.Entity, fn func(*T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, ok := s.data[e]
	if !ok {
		return false
	}
	fn(&val)
	s.data[e] = val
	return true
}

// Remove drops the component of e, keeping the order of the rest
func (s *Store[T]) Remove(e core.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[e]; !ok {
		return
	}
	delete(s.data, e)
	if i := slices.Index(s.order, e); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *Store[T]) Has(e core.Entity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[e]
	return ok
}

// All returns a copy of the entity list in insertion order
func (s *Store[T]) All() []core.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Store[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.data)
	s.order = s.order[:0]
}

// Single returns the entity and value when exactly one entity has T
func (s *Store[T]) Single() (core.Entity, T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) != 1 {
		var zero T
		return core.NoEntity, zero, false
	}
	e := s.order[0]
	return e, s.data[e], true
}
