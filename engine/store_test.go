package engine

import (
	"testing"

	"github.com/lixenwraith/cellscene/core"
)

type testPosition struct{ X, Y int }
type testTag struct{}
type testSpeed struct{ V float32 }

func TestStore_SetGetUpdateRemove(t *testing.T) {
	s := NewStore[testPosition]()
	e := core.Entity(3)

	s.Set(e, testPosition{X: 1, Y: 2})
	if got, ok := s.Get(e); !ok || got.X != 1 {
		t.Errorf("Expected X=1, got %+v (ok=%v)", got, ok)
	}

	if !s.Update(e, func(p *testPosition) { p.X += 10 }) {
		t.Error("Expected Update to find the entity")
	}
	if got, _ := s.Get(e); got.X != 11 {
		t.Errorf("Expected X=11 after update, got %d", got.X)
	}
	if s.Update(core.Entity(99), func(p *testPosition) {}) {
		t.Error("Expected Update on missing entity to return false")
	}

	s.Remove(e)
	if s.Has(e) || s.Count() != 0 {
		t.Errorf("Expected empty store after remove, count=%d", s.Count())
	}
}

func TestStore_AllKeepsInsertionOrder(t *testing.T) {
	s := NewStore[testTag]()
	for _, e := range []core.Entity{5, 2, 9, 7} {
		s.Set(e, testTag{})
	}
	s.Remove(2)
	s.Set(5, testTag{}) // Overwrite keeps position

	want := []core.Entity{5, 9, 7}
	got := s.All()
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
}

func TestStore_Single(t *testing.T) {
	s := NewStore[testSpeed]()
	if _, _, ok := s.Single(); ok {
		t.Error("Expected Single on empty store to fail")
	}

	s.Set(1, testSpeed{V: 5})
	e, v, ok := s.Single()
	if !ok || e != 1 || v.V != 5 {
		t.Errorf("Expected entity 1 with speed 5, got %d %+v %v", e, v, ok)
	}

	s.Set(2, testSpeed{})
	if _, _, ok := s.Single(); ok {
		t.Error("Expected Single with two entities to fail")
	}
}

func TestWorld_RegistryAndDestroy(t *testing.T) {
	w := NewWorld()
	positions := GetStore[testPosition](w)
	if RegisterComponent[testPosition](w) != positions {
		t.Error("Expected registry to return the same store")
	}
	tags := GetStore[testTag](w)

	e := w.CreateEntity()
	if e == core.NoEntity {
		t.Fatal("Expected non-zero entity")
	}
	positions.Set(e, testPosition{})
	tags.Set(e, testTag{})

	w.DestroyEntity(e)
	if positions.Has(e) || tags.Has(e) {
		t.Error("Expected DestroyEntity to remove every component")
	}
}

func TestWorld_ClearResetsEntities(t *testing.T) {
	w := NewWorld()
	positions := GetStore[testPosition](w)
	positions.Set(w.CreateEntity(), testPosition{})
	w.CreateEntity()

	w.Clear()
	if positions.Count() != 0 {
		t.Errorf("Expected empty store, got %d", positions.Count())
	}
	if e := w.CreateEntity(); e != 1 {
		t.Errorf("Expected entity IDs to restart at 1, got %d", e)
	}
}

func TestQuery_WithAndWithout(t *testing.T) {
	w := NewWorld()
	positions := GetStore[testPosition](w)
	speeds := GetStore[testSpeed](w)
	tags := GetStore[testTag](w)

	e1 := w.CreateEntity()
	positions.Set(e1, testPosition{})
	speeds.Set(e1, testSpeed{})

	e2 := w.CreateEntity()
	positions.Set(e2, testPosition{})

	e3 := w.CreateEntity()
	positions.Set(e3, testPosition{})
	speeds.Set(e3, testSpeed{})
	tags.Set(e3, testTag{})

	tests := []struct {
		name string
		q    *QueryBuilder
		want []core.Entity
	}{
		{"single store", w.Query().With(positions), []core.Entity{e1, e2, e3}},
		{"intersection", w.Query().With(positions).With(speeds), []core.Entity{e1, e3}},
		{"exclusion", w.Query().With(positions).Without(tags), []core.Entity{e1, e2}},
		{"both", w.Query().With(speeds).With(positions).Without(tags), []core.Entity{e1}},
		{"empty", w.Query(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.Execute()
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestQuery_ModifyAfterExecutePanics(t *testing.T) {
	w := NewWorld()
	q := w.Query().With(GetStore[testTag](w))
	q.Execute()

	defer func() {
		if recover() == nil {
			t.Error("Expected panic when modifying executed query")
		}
	}()
	q.With(GetStore[testPosition](w))
}

func TestResourceStore(t *testing.T) {
	rs := NewResourceStore()

	if _, ok := GetResource[*TimeResource](rs); ok {
		t.Error("Expected missing resource")
	}

	tr := &TimeResource{}
	AddResource(rs, tr)
	if got := MustGetResource[*TimeResource](rs); got != tr {
		t.Error("Expected the same pointer back")
	}

	RemoveResource[*TimeResource](rs)
	defer func() {
		if recover() == nil {
			t.Error("Expected MustGetResource to panic on missing resource")
		}
	}()
	MustGetResource[*TimeResource](rs)
}
