package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/dodeca/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRefLifecycle(t *testing.T) {
	storage := newTestStorage()

	id := storage.Spawn(&Position{X: 1, Y: 2})
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Same(t, ref, storage.CreateEntityRef(id))

	resolved, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, id, resolved)

	assert.True(t, storage.InvalidateEntityRef(ref))
	assert.False(t, storage.InvalidateEntityRef(ref))
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.True(t, storage.Alive(id))
}

func TestEntityRefFollowsMigration(t *testing.T) {
	storage := newTestStorage()

	id := storage.Spawn(Position{X: 7})
	ref := storage.CreateEntityRef(id)

	moved := storage.AddComponent(id, Velocity{DX: 1})
	resolved, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, moved, resolved)

	moved = storage.RemoveComponent(moved, reflect.TypeFor[Position]())
	resolved, ok = storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, moved, resolved)
	assert.Equal(t, float32(1), ecs.ReadComponent[Velocity](storage, resolved).DX)
}

func TestEntityRefClearedOnDelete(t *testing.T) {
	storage := newTestStorage()

	id := storage.Spawn(Position{})
	ref := storage.CreateEntityRef(id)
	storage.Delete(id)

	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)
	assert.Nil(t, storage.CreateEntityRef(id))
}

func TestEntityRefNil(t *testing.T) {
	storage := newTestStorage()

	_, ok := storage.ResolveEntityRef(nil)
	assert.False(t, ok)
	assert.False(t, storage.InvalidateEntityRef(nil))
}
