package ecs_test

import (
	"testing"

	"github.com/plus3/lazyengine/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mover = struct {
	*Position
	*Velocity
}

// spawn creates an entity and sets each value as a component.
func spawn(em *ecs.EntityManager, values ...any) *ecs.Entity {
	e := em.CreateEntity()
	for _, v := range values {
		switch v := v.(type) {
		case Position:
			ecs.Add(e, v)
		case Velocity:
			ecs.Add(e, v)
		case Name:
			ecs.Add(e, v)
		case Health:
			ecs.Add(e, v)
		case Temperature:
			ecs.Add(e, v)
		case Score:
			ecs.Add(e, v)
		case Inventory:
			ecs.Add(e, v)
		default:
			panic("spawn: unsupported component")
		}
	}
	return e
}

func TestView(t *testing.T) {
	em := ecs.NewEntityManager()
	e := spawn(em, Position{X: 1, Y: 2}, Temperature(32))

	view := ecs.NewView[struct {
		*Position
		*Temperature
	}](em)

	item := view.Get(e)
	require.NotNil(t, item)
	assert.Equal(t, Temperature(32), *item.Temperature)
	assert.Equal(t, Position{X: 1, Y: 2}, *item.Position)
}

func TestViewMissingComponent(t *testing.T) {
	em := ecs.NewEntityManager()
	e := spawn(em, Position{X: 5, Y: 10})

	view := ecs.NewView[mover](em)

	assert.Nil(t, view.Get(e))
	assert.False(t, view.Matches(e))

	var result mover
	assert.False(t, view.Fill(e, &result))
	assert.False(t, view.Fill(nil, &result))
}

func TestViewAliasesStorage(t *testing.T) {
	em := ecs.NewEntityManager()
	e := spawn(em, Position{X: 1, Y: 1}, Velocity{DX: 2, DY: 3})

	view := ecs.NewView[mover](em)
	item := view.Get(e)
	require.NotNil(t, item)
	assert.Same(t, ecs.MustGet[Position](e), item.Position)

	item.Position.X += item.Velocity.DX
	assert.Equal(t, float32(3), ecs.MustGet[Position](e).X)
}

func TestViewDeletedEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	e := spawn(em, Position{}, Velocity{})
	em.DeleteEntity(e.Id())

	view := ecs.NewView[mover](em)
	assert.Nil(t, view.Get(e))
	assert.Equal(t, 0, view.Len())
}

func TestViewIter(t *testing.T) {
	em := ecs.NewEntityManager()
	var want []ecs.EntityId
	for i := 0; i < 5; i++ {
		e := spawn(em, Position{X: float32(i)}, Velocity{DX: 1})
		want = append(want, e.Id())
		spawn(em, Position{X: -1})
	}

	view := ecs.NewView[mover](em)
	assert.Equal(t, 5, view.Len())

	var got []ecs.EntityId
	for e, item := range view.Iter() {
		got = append(got, e.Id())
		item.Position.X += item.Velocity.DX
	}
	assert.Equal(t, want, got)

	for i, id := range want {
		e, _ := em.Entity(id)
		assert.Equal(t, float32(i+1), ecs.MustGet[Position](e).X)
	}
}

func TestViewIterEarlyBreak(t *testing.T) {
	em := ecs.NewEntityManager()
	for i := 0; i < 10; i++ {
		spawn(em, Position{}, Velocity{})
	}

	count := 0
	for range ecs.NewView[mover](em).Values() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestViewIterSkipsDeletedDuringIteration(t *testing.T) {
	em := ecs.NewEntityManager()
	first := spawn(em, Position{}, Velocity{})
	second := spawn(em, Position{}, Velocity{})
	third := spawn(em, Position{}, Velocity{})

	view := ecs.NewView[mover](em)

	var seen []ecs.EntityId
	for e := range view.Iter() {
		seen = append(seen, e.Id())
		if e == first {
			em.DeleteEntity(second.Id())
			spawn(em, Position{}, Velocity{})
		}
	}

	assert.Equal(t, []ecs.EntityId{first.Id(), third.Id()}, seen)
	assert.Equal(t, 3, view.Len())
}

func TestViewOptionalComponent(t *testing.T) {
	em := ecs.NewEntityManager()
	withHealth := spawn(em, Position{X: 1}, Health{Current: 10, Max: 20})
	without := spawn(em, Position{X: 2})
	spawn(em, Health{Current: 5})

	type item = struct {
		*Position
		Health *Health `ecs:"optional"`
	}
	view := ecs.NewView[item](em)

	assert.Equal(t, 2, view.Len())

	a := view.Get(withHealth)
	require.NotNil(t, a)
	require.NotNil(t, a.Health)
	assert.Equal(t, 10, a.Health.Current)

	b := view.Get(without)
	require.NotNil(t, b)
	assert.Nil(t, b.Health)
	assert.Equal(t, float32(2), b.Position.X)
}

func TestViewFillResetsOptional(t *testing.T) {
	em := ecs.NewEntityManager()
	withName := spawn(em, Position{}, Name{Value: "a"})
	without := spawn(em, Position{})

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](em)

	var result struct {
		*Position
		Name *Name `ecs:"optional"`
	}
	require.True(t, view.Fill(withName, &result))
	assert.NotNil(t, result.Name)

	require.True(t, view.Fill(without, &result))
	assert.Nil(t, result.Name)
}

func TestViewAllOptional(t *testing.T) {
	em := ecs.NewEntityManager()
	spawn(em, Position{})
	spawn(em, Name{Value: "x"})
	em.CreateEntity()

	view := ecs.NewView[struct {
		Position *Position `ecs:"optional"`
		Name     *Name     `ecs:"optional"`
	}](em)

	assert.Equal(t, 3, view.Len())
}

func TestViewPrimitiveAndSliceComponents(t *testing.T) {
	em := ecs.NewEntityManager()
	e := spawn(em, Score(100), Inventory{Items: []string{"sword"}})

	view := ecs.NewView[struct {
		*Score
		*Inventory
	}](em)

	item := view.Get(e)
	require.NotNil(t, item)
	*item.Score += 5
	item.Inventory.Items = append(item.Inventory.Items, "shield")

	assert.Equal(t, Score(105), *ecs.MustGet[Score](e))
	assert.Equal(t, []string{"sword", "shield"}, ecs.MustGet[Inventory](e).Items)
}

func TestViewComponentNeverAdded(t *testing.T) {
	type neverAdded struct{ N int }

	em := ecs.NewEntityManager()
	spawn(em, Position{})

	view := ecs.NewView[struct {
		*Position
		*neverAdded
	}](em)
	assert.Equal(t, 0, view.Len())

	e := em.CreateEntity(positionType, ecs.Type[neverAdded]())
	assert.True(t, view.Matches(e))
	assert.Equal(t, 1, view.Len())
}

func TestViewInvalidTag(t *testing.T) {
	assert.PanicsWithValue(t,
		`invalid ecs tag value: "required" (only "optional" is supported)`,
		func() {
			ecs.NewView[struct {
				Position *Position `ecs:"required"`
			}](ecs.NewEntityManager())
		})
}

func TestViewInvalidShape(t *testing.T) {
	assert.Panics(t, func() {
		ecs.NewView[Position](ecs.NewEntityManager())
	})
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](ecs.NewEntityManager())
	})
}
