package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/flapper/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsSpawnRefResolvesOnFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var ref *ecs.EntityRef
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		if ref != nil {
			return
		}
		ref = frame.Commands.Spawn(Position{X: 7}, Obstacle{})
		assert.False(t, ref.Valid(), "ref must stay unresolved until flush")
		_, ok := frame.Storage.ResolveEntityRef(ref)
		assert.False(t, ok)
	}))

	scheduler.Once(0)

	require.True(t, ref.Valid())
	pos := ecs.ReadComponent[Position](storage, ref.Id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(7), pos.X)

	// The ref is tracked like one made by CreateEntityRef.
	assert.Same(t, ref, storage.CreateEntityRef(ref.Id))
	storage.Delete(ref.Id)
	assert.False(t, ref.Valid())
}

func TestCommandsDeleteThenSpawnInOneFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	old := storage.Spawn(Position{X: 1}, Obstacle{})
	oldRef := storage.CreateEntityRef(old)

	var fresh *ecs.EntityRef
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Delete(old)
		fresh = frame.Commands.Spawn(Position{X: 2}, Obstacle{})
	}))
	scheduler.Once(0)

	assert.False(t, oldRef.Valid())
	require.True(t, fresh.Valid())
	assert.Equal(t, old.Index(), fresh.Id.Index(), "deletes run before spawns, so the slot is recycled")
	assert.NotEqual(t, old, fresh.Id)
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, fresh.Id).X)

	// The old ID no longer reaches the slot's new occupant.
	storage.Delete(old)
	assert.True(t, fresh.Valid())
	assert.True(t, storage.Alive(fresh.Id))
}

func TestCommandsSkipChangesToDeletedEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	keep := storage.Spawn(Position{})
	drop := storage.Spawn(Position{}, Velocity{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.AddComponent(drop, Health{Current: 1})
		frame.Commands.RemoveComponent(drop, reflect.TypeFor[Velocity]())
		frame.Commands.Delete(drop)
		frame.Commands.AddComponent(keep, Health{Current: 5})
	}))
	scheduler.Once(0)

	assert.False(t, storage.Alive(drop))
	stats := storage.CollectStats()
	assert.Equal(t, 1, stats.TotalEntityCount)

	view := ecs.NewView[struct {
		*Position
		*Health
	}](storage)
	count := 0
	for item := range view.Values() {
		count++
		assert.Equal(t, 5, item.Health.Current)
	}
	assert.Equal(t, 1, count)
}

func TestCommandsDeferRunsAfterStructuralChanges(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var seen int
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() {
			seen = storage.CollectStats().TotalEntityCount
		})
		frame.Commands.Spawn(Name("a"))
		frame.Commands.Spawn(Name("b"))
		assert.Equal(t, 3, frame.Commands.Len())
	}))
	scheduler.Once(0)

	assert.Equal(t, 2, seen)
}
