package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/dodeca/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{1, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}

	assert.Equal(t, "0000002a:7", ecs.NewEntityId(42, 7).String())
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := newTestStorage()

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name{Value: "crate"}, Score(12))
	require.True(t, storage.Alive(id))
	assert.NotZero(t, id.ArchetypeId())

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)

	assert.Equal(t, "crate", ecs.ReadComponent[Name](storage, id).Value)
	assert.Equal(t, Score(12), *ecs.ReadComponent[Score](storage, id))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestSpawnOrderDoesNotChangeArchetype(t *testing.T) {
	storage := newTestStorage()

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotNil(t, storage.GetArchetype(Velocity{}, Position{}))
	assert.Len(t, storage.GetArchetypes(), 1)
}

func TestSpawnRejectsInvalidComponents(t *testing.T) {
	storage := newTestStorage()

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
}

func TestDeleteEntity(t *testing.T) {
	storage := newTestStorage()

	keep := storage.Spawn(Position{X: 1})
	gone := storage.Spawn(Position{X: 2})

	storage.Delete(gone)
	assert.False(t, storage.Alive(gone))
	assert.True(t, storage.Alive(keep))
	assert.Nil(t, ecs.ReadComponent[Position](storage, gone))

	assert.NotPanics(t, func() { storage.Delete(gone) })
	assert.NotPanics(t, func() { storage.Delete(0) })
	assert.False(t, storage.Alive(0))
}

func TestDeletedSlotIsReused(t *testing.T) {
	storage := newTestStorage()

	first := storage.Spawn(Position{X: 1})
	storage.Delete(first)
	second := storage.Spawn(Position{X: 2})

	assert.Equal(t, first, second)
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, second).X)
}

func TestAddComponentMigrates(t *testing.T) {
	storage := newTestStorage()

	id := storage.Spawn(Position{X: 5, Y: 6})
	newId := storage.AddComponent(id, Velocity{DX: 1})

	require.NotEqual(t, id, newId)
	assert.False(t, storage.Alive(id))
	assert.Equal(t, Position{X: 5, Y: 6}, *ecs.ReadComponent[Position](storage, newId))
	assert.Equal(t, float32(1), ecs.ReadComponent[Velocity](storage, newId).DX)
	assert.Len(t, storage.ComponentTypes(newId), 2)
}

func TestAddComponentReplacesExisting(t *testing.T) {
	storage := newTestStorage()

	id := storage.Spawn(Position{X: 5}, Health{Current: 10, Max: 10})
	same := storage.AddComponent(id, &Health{Current: 3, Max: 10})

	assert.Equal(t, id, same)
	assert.Equal(t, 3, ecs.ReadComponent[Health](storage, id).Current)
}

func TestAddComponentToDeadEntity(t *testing.T) {
	storage := newTestStorage()

	id := storage.Spawn(Position{})
	storage.Delete(id)

	assert.Equal(t, ecs.EntityId(0), storage.AddComponent(id, Velocity{}))
}

func TestRemoveComponent(t *testing.T) {
	storage := newTestStorage()
	velocityType := reflect.TypeFor[Velocity]()

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})

	t.Run("migrates to smaller archetype", func(t *testing.T) {
		newId := storage.RemoveComponent(id, velocityType)
		require.True(t, storage.Alive(newId))
		assert.False(t, storage.HasComponent(newId, velocityType))
		assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, newId).X)
		id = newId
	})

	t.Run("absent type is a no-op", func(t *testing.T) {
		assert.Equal(t, id, storage.RemoveComponent(id, velocityType))
		assert.True(t, storage.Alive(id))
	})

	t.Run("last component deletes the entity", func(t *testing.T) {
		assert.Equal(t, ecs.EntityId(0), storage.RemoveComponent(id, reflect.TypeFor[Position]()))
		assert.False(t, storage.Alive(id))
	})
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := newTestStorage()

	first := storage.Spawn(Position{X: 1})
	ptr := ecs.ReadComponent[Position](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	assert.Same(t, ptr, ecs.ReadComponent[Position](storage, first))
	ptr.X = 99
	assert.Equal(t, float32(99), ecs.ReadComponent[Position](storage, first).X)
}

func TestArchetypeCompact(t *testing.T) {
	storage := newTestStorage()

	var ids []ecs.EntityId
	for i := 0; i < 10; i++ {
		ids = append(ids, storage.Spawn(Position{X: float32(i)}))
	}
	last := storage.CreateEntityRef(ids[9])
	for _, id := range ids[:5] {
		storage.Delete(id)
	}

	archetype := storage.GetArchetype(Position{})
	archetype.Compact()

	assert.Equal(t, 5, archetype.Len())
	resolved, ok := storage.ResolveEntityRef(last)
	require.True(t, ok)
	assert.Less(t, resolved.Index(), uint32(5))
	assert.Equal(t, float32(9), ecs.ReadComponent[Position](storage, resolved).X)
}
