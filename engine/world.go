package engine

import (
	"reflect"
	"sync"

	"github.com/lixenwraith/cellscene/core"
)

// World contains all entities and their components using typed stores
type World struct {
	mu           sync.RWMutex
	nextEntityID core.Entity

	// Global resource store
	Resources *ResourceStore

	stores    map[reflect.Type]AnyStore
	schedules map[Stage]*Schedule
}

// NewWorld creates a new ECS world with dynamic component store support
func NewWorld() *World {
	w := &World{
		nextEntityID: 1,
		Resources:    NewResourceStore(),
		stores:       make(map[reflect.Type]AnyStore),
		schedules:    make(map[Stage]*Schedule),
	}
	for _, stage := range allStages {
		w.schedules[stage] = NewSchedule(stage)
	}
	return w
}

// RegisterComponent creates the store for T if missing and returns it
func RegisterComponent[T any](w *World) *Store[T] {
	t := reflect.TypeFor[T]()

	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := w.stores[t]; ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	w.stores[t] = s
	return s
}

// GetStore returns the store for T, registering it on first use
func GetStore[T any](w *World) *Store[T] {
	w.mu.RLock()
	s, ok := w.stores[reflect.TypeFor[T]()]
	w.mu.RUnlock()
	if ok {
		return s.(*Store[T])
	}
	return RegisterComponent[T](w)
}

// CreateEntity reserves a new entity ID
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes all components associated with an entity
func (w *World) DestroyEntity(e core.Entity) {
	w.mu.RLock()
	stores := make([]AnyStore, 0, len(w.stores))
	for _, s := range w.stores {
		stores = append(stores, s)
	}
	w.mu.RUnlock()

	for _, s := range stores {
		s.Remove(e)
	}
}

// Clear removes all entities and components from the world
// Resources and schedules are kept
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.nextEntityID = 1
	for _, s := range w.stores {
		s.Clear()
	}
}

// Schedule returns the schedule for a stage
func (w *World) Schedule(stage Stage) *Schedule {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.schedules[stage]
}
