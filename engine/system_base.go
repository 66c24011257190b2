package engine

import "github.com/lixenwraith/cellscene/core"

// SystemBase bundles the world with its core resources and typed stores
// Systems embed it and build it once in their constructor
type SystemBase struct {
	World     *World
	Resource  Resource
	Component ComponentStore
}

// NewSystemBase snapshots resource and store pointers from w
// The App core resources must already be inserted
func NewSystemBase(w *World) SystemBase {
	return SystemBase{
		World:     w,
		Resource:  GetResourceStore(w),
		Component: GetComponentStore(w),
	}
}

// Entities returns the entities that have a component in every store
func (b *SystemBase) Entities(stores ...QueryableStore) []core.Entity {
	q := b.World.Query()
	for _, s := range stores {
		q.With(s)
	}
	return q.Execute()
}
