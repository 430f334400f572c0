package ecs_test

import (
	"testing"

	"github.com/plus3/dodeca/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movingView struct {
	*Position
	*Velocity
}

func TestViewGet(t *testing.T) {
	storage := newTestStorage()
	moving := storage.Spawn(&Position{X: 1, Y: 2}, &Velocity{DX: 3})
	still := storage.Spawn(&Position{X: 5})

	view := ecs.NewView[movingView](storage)

	item := view.Get(moving)
	require.NotNil(t, item)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(3), item.Velocity.DX)

	assert.Nil(t, view.Get(still))
	assert.Nil(t, view.Get(0))

	storage.Delete(moving)
	assert.Nil(t, view.Get(moving))
}

func TestViewFillMutatesStorage(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})

	view := ecs.NewView[movingView](storage)

	var item movingView
	require.True(t, view.Fill(id, &item))
	item.Position.X += item.Velocity.DX

	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, id).X)
}

func TestViewEntityIdField(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Name{Value: "lamp"})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Name
	}](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, id, item.Id)

	for gotId, value := range view.Iter() {
		assert.Equal(t, gotId, value.Id)
	}
}

func TestViewIterAcrossArchetypes(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(Position{X: 1}, Velocity{})
	storage.Spawn(Position{X: 2}, Velocity{}, Health{})
	storage.Spawn(Position{X: 3}, Velocity{}, Name{})
	storage.Spawn(Position{X: 4})

	view := ecs.NewView[movingView](storage)

	var sum float32
	count := 0
	for item := range view.Values() {
		sum += item.Position.X
		count++
	}
	assert.Equal(t, 3, count)
	assert.Equal(t, float32(6), sum)
}

func TestViewIterEarlyBreak(t *testing.T) {
	storage := newTestStorage()
	for i := 0; i < 10; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	view := ecs.NewView[struct{ *Position }](storage)
	count := 0
	for range view.Iter() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestViewIterSkipsDeleted(t *testing.T) {
	storage := newTestStorage()
	var ids []ecs.EntityId
	for i := 0; i < 5; i++ {
		ids = append(ids, storage.Spawn(Position{X: float32(i)}))
	}
	storage.Delete(ids[1])
	storage.Delete(ids[3])

	view := ecs.NewView[struct{ *Position }](storage)
	var seen []float32
	for item := range view.Values() {
		seen = append(seen, item.Position.X)
	}
	assert.ElementsMatch(t, []float32{0, 2, 4}, seen)
}

func TestViewOptionalComponent(t *testing.T) {
	storage := newTestStorage()
	withHealth := storage.Spawn(Position{X: 1}, Health{Current: 4})
	without := storage.Spawn(Position{X: 2})
	storage.Spawn(Health{Current: 9})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](storage)

	item := view.Get(withHealth)
	require.NotNil(t, item)
	require.NotNil(t, item.Health)
	assert.Equal(t, 4, item.Health.Current)

	item = view.Get(without)
	require.NotNil(t, item)
	assert.Nil(t, item.Health)

	count := 0
	for range view.Iter() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestViewInvalidDefinitions(t *testing.T) {
	storage := newTestStorage()

	assert.Panics(t, func() {
		ecs.NewView[struct {
			Health *Health `ecs:"sometimes"`
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() { ecs.NewView[int](storage) })
}

func TestViewSpawn(t *testing.T) {
	storage := newTestStorage()

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		*Position
		Name *Name `ecs:"optional"`
	}{Position: &Position{X: 8}})

	assert.Equal(t, float32(8), ecs.ReadComponent[Position](storage, id).X)
	assert.Nil(t, ecs.ReadComponent[Name](storage, id))

	assert.Panics(t, func() {
		view.Spawn(struct {
			*Position
			Name *Name `ecs:"optional"`
		}{Name: &Name{}})
	})
}

func TestViewSliceComponent(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Inventory{Items: []string{"key"}})

	view := ecs.NewView[struct{ *Inventory }](storage)
	item := view.Get(id)
	require.NotNil(t, item)
	item.Inventory.Items = append(item.Inventory.Items, "lamp")

	assert.Equal(t, []string{"key", "lamp"}, ecs.ReadComponent[Inventory](storage, id).Items)
}
