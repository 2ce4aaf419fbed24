package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/flapper/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
		generation  uint8
	}{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0xFFFFFFFF, ecs.MaxEntitiesPerArchetype - 1, 0xFF},
		{0x12345678, 0xABCDEF, 0x42},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d,gen=%d", tt.archetypeId, tt.index, tt.generation), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index, tt.generation)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
			assert.Equal(t, tt.generation, id.Generation())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name("bird"))
	require.NotEqual(t, ecs.EntityId(0), id)

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, Name("bird"), *name)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Name]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
}

func TestComponentPointerIsStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	pos := ecs.ReadComponent[Position](storage, first)

	// Force several new blocks in the same column.
	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.X = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, first).X)
}

func TestSpawnWithoutComponentsPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.Panics(t, func() { storage.Spawn() })
}

func TestSpawnUnregisteredPanics(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	assert.PanicsWithValue(t, "component type ecs_test.Position not registered", func() {
		storage.Spawn(Position{})
	})
}

func TestDeleteFreesSlotForReuse(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1}, Obstacle{})
	b := storage.Spawn(Position{X: 2}, Obstacle{})
	storage.Delete(a)

	assert.False(t, storage.Alive(a))
	assert.True(t, storage.Alive(b))
	assert.Nil(t, ecs.ReadComponent[Position](storage, a))

	c := storage.Spawn(Position{X: 3}, Obstacle{})
	assert.Equal(t, a.Index(), c.Index(), "freed slot should be reused")
	assert.NotEqual(t, a, c)
	assert.Equal(t, a.Generation()+1, c.Generation())
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, c).X)

	// Deleting twice, or an unknown entity, is a no-op.
	storage.Delete(a)
	storage.Delete(ecs.NewEntityId(999, 0, 0))
	assert.True(t, storage.Alive(c))
	assert.True(t, storage.Alive(b))
}

func TestStaleIdDoesNotReachSlotOccupant(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{X: 1}, Obstacle{})
	storage.Delete(a)
	c := storage.Spawn(Position{X: 3}, Obstacle{})
	require.Equal(t, a.Index(), c.Index())

	assert.False(t, storage.Alive(a))
	assert.Nil(t, ecs.ReadComponent[Position](storage, a))
	assert.False(t, storage.HasComponent(a, reflect.TypeFor[Position]()))
	assert.Nil(t, storage.CreateEntityRef(a))
	assert.Zero(t, storage.AddComponent(a, Name("ghost")))
	assert.Zero(t, storage.RemoveComponent(a, reflect.TypeFor[Obstacle]()))

	view := ecs.NewView[struct{ *Position }](storage)
	assert.Nil(t, view.Get(a))
	require.NotNil(t, view.Get(c))

	assert.True(t, storage.Alive(c))
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, c).X)
	assert.False(t, storage.HasComponent(c, reflect.TypeFor[Name]()))
}

func TestSpawnDeleteCycleKeepsFootprint(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	live := make([]ecs.EntityId, 0, 4)
	maxIndex := uint32(0)
	for frame := 0; frame < 1000; frame++ {
		live = append(live, storage.Spawn(Position{X: float32(frame)}, Obstacle{}))
		if len(live) > 4 {
			storage.Delete(live[0])
			live = live[1:]
		}
		for _, id := range live {
			maxIndex = max(maxIndex, id.Index())
		}
	}

	assert.Less(t, maxIndex, uint32(5))
	assert.Equal(t, 4, storage.CollectStats().TotalEntityCount)
}

func TestAddComponentMovesEntityAndRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 5, Y: 6})
	ref := storage.CreateEntityRef(id)
	require.True(t, ref.Valid())
	assert.Same(t, ref, storage.CreateEntityRef(id), "refs are shared per entity")

	moved := storage.AddComponent(id, Velocity{DX: 1})
	assert.NotEqual(t, id.ArchetypeId(), moved.ArchetypeId())
	assert.Equal(t, moved, ref.Id)

	pos := ecs.ReadComponent[Position](storage, moved)
	require.NotNil(t, pos)
	assert.Equal(t, float32(5), pos.X)
	assert.Equal(t, float32(1), ecs.ReadComponent[Velocity](storage, moved).DX)
	assert.False(t, storage.Alive(id))

	back := storage.RemoveComponent(moved, reflect.TypeFor[Velocity]())
	assert.Equal(t, back, ref.Id)
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, back))
}

func TestRemoveLastComponentDeletes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Health{Current: 1})
	ref := storage.CreateEntityRef(id)

	assert.Equal(t, ecs.EntityId(0), storage.RemoveComponent(id, reflect.TypeFor[Health]()))
	assert.False(t, ref.Valid())
	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)
}

func TestDeleteInvalidatesRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{})
	ref := storage.CreateEntityRef(id)
	storage.Delete(id)

	assert.Equal(t, ecs.EntityId(0), ref.Id)
	assert.Nil(t, ref.Archetype)
	assert.Nil(t, storage.CreateEntityRef(id))
	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)

	// A new entity in the recycled slot gets a fresh ID and a fresh ref.
	reused := storage.Spawn(Position{})
	assert.Equal(t, id.Index(), reused.Index())
	assert.NotEqual(t, id, reused)
	assert.NotSame(t, ref, storage.CreateEntityRef(reused))
	assert.False(t, ref.Valid())
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var missing *Health
	assert.False(t, storage.ReadSingleton(&missing))
	assert.Nil(t, missing)

	first := ecs.NewSingleton(storage, Health{Current: 3, Max: 3})
	second := ecs.NewSingleton(storage, Health{Current: 99})
	assert.Equal(t, 3, second.Get().Current, "existing singleton is not overwritten")

	second.Get().Current = 1
	assert.Equal(t, 1, first.Get().Current)

	var h *Health
	require.True(t, storage.ReadSingleton(&h))
	assert.Equal(t, 1, h.Current)

	assert.Panics(t, func() { storage.ReadSingleton(h) })
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	storage.Spawn(200.0, "test")
	ecs.NewSingleton(storage, 3.14)
	ecs.NewSingleton(storage, "singleton")

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"float64", "string"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, []string{"float64", "string"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, []string{"int", "string"}, stats.ArchetypeBreakdown[1].ComponentTypes)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[1].EntityCount)
}
