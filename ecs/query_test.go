package ecs_test

import (
	"testing"

	"github.com/plus3/dodeca/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 1})
	storage.Spawn(Position{X: 3}, Velocity{DX: 1}, Health{})
	storage.Spawn(Position{X: 4})

	query := ecs.NewQuery[movingView](storage)

	t.Run("panics before execute", func(t *testing.T) {
		fresh := ecs.NewQuery[movingView](storage)
		assert.Panics(t, func() {
			for range fresh.Iter() {
			}
		})
		assert.Panics(t, func() {
			for range fresh.Values() {
			}
		})
	})

	t.Run("execute captures matches", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())

		seen := make(map[ecs.EntityId]bool)
		for id, item := range query.Iter() {
			assert.True(t, storage.Alive(id))
			assert.NotNil(t, item.Velocity)
			seen[id] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("new archetypes are picked up", func(t *testing.T) {
		storage.Spawn(Position{X: 5}, Velocity{}, Name{})
		query.Execute()
		assert.Equal(t, 4, query.Len())
	})

	t.Run("snapshot survives structural changes", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		for id := range query.Iter() {
			storage.Delete(id)
			storage.Spawn(Position{}, Velocity{})
		}
		assert.Equal(t, before, query.Len())

		query.Execute()
		assert.Equal(t, before, query.Len())
	})
}

func TestQueryOrderIsStable(t *testing.T) {
	storage := newTestStorage()
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			storage.Spawn(Position{X: float32(i)}, Name{})
		} else {
			storage.Spawn(Position{X: float32(i)})
		}
	}

	query := ecs.NewQuery[struct{ *Position }](storage)
	collect := func() []float32 {
		query.Execute()
		var out []float32
		for item := range query.Values() {
			out = append(out, item.Position.X)
		}
		return out
	}

	first := collect()
	require.Len(t, first, 20)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, collect())
	}
}
