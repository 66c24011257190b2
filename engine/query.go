package engine

import (
	"slices"

	"github.com/lixenwraith/cellscene/core"
)

// QueryBuilder selects entities by component presence
// Built with With/Without, evaluated once by Execute
type QueryBuilder struct {
	world    *World
	with     []QueryableStore
	without  []QueryableStore
	executed bool
	results  []core.Entity
}

// Query starts an empty query on w
//
//	cams := world.Query().With(transforms).With(cameras).Execute()
func (w *World) Query() *QueryBuilder {
	return &QueryBuilder{world: w}
}

// With requires a component in store
func (qb *QueryBuilder) With(store QueryableStore) *QueryBuilder {
	qb.mustBeOpen()
	qb.with = append(qb.with, store)
	return qb
}

// Without rejects entities with a component in store
func (qb *QueryBuilder) Without(store QueryableStore) *QueryBuilder {
	qb.mustBeOpen()
	qb.without = append(qb.without, store)
	return qb
}

func (qb *QueryBuilder) mustBeOpen() {
	if qb.executed {
		panic("query already executed - cannot modify after Execute()")
	}
}

// Execute returns matching entities, in the insertion order of the smallest
// required store. Later calls return the same slice.
func (qb *QueryBuilder) Execute() []core.Entity {
	if qb.executed {
		return qb.results
	}
	qb.executed = true
	if len(qb.with) == 0 {
		return nil
	}

	// Smallest first; stable keeps declaration order on ties
	slices.SortStableFunc(qb.with, func(a, b QueryableStore) int {
		return a.Count() - b.Count()
	})

	out := qb.with[0].All()
	for _, s := range qb.with[1:] {
		out = keep(out, s, true)
	}
	for _, s := range qb.without {
		out = keep(out, s, false)
	}
	qb.results = out
	return out
}

// keep filters in place to entities whose presence in s equals present
func keep(es []core.Entity, s QueryableStore, present bool) []core.Entity {
	n := 0
	for _, e := range es {
		if s.Has(e) == present {
			es[n] = e
			n++
		}
	}
	return es[:n]
}
