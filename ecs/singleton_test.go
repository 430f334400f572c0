package ecs_test

import (
	"testing"

	"github.com/plus3/dodeca/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FrameCounter struct {
	Frames int
}

func TestSingleton(t *testing.T) {
	storage := newTestStorage()

	t.Run("missing singleton", func(t *testing.T) {
		var s ecs.Singleton[FrameCounter]
		s.Init(storage)
		assert.False(t, s.Exists())
		assert.Nil(t, s.Get())

		var out *FrameCounter
		assert.False(t, storage.ReadSingleton(&out))
	})

	t.Run("initializer is stored once", func(t *testing.T) {
		a := ecs.NewSingleton(storage, FrameCounter{Frames: 3})
		b := ecs.NewSingleton(storage, FrameCounter{Frames: 100})
		require.True(t, a.Exists())
		assert.Same(t, a.Get(), b.Get())
		assert.Equal(t, 3, b.Get().Frames)
	})

	t.Run("replacement keeps accessors valid", func(t *testing.T) {
		accessor := ecs.NewSingleton[FrameCounter](storage)
		before := accessor.Get()

		storage.AddSingleton(&FrameCounter{Frames: 42})
		assert.Same(t, before, accessor.Get())
		assert.Equal(t, 42, accessor.Get().Frames)

		var out *FrameCounter
		require.True(t, storage.ReadSingleton(&out))
		out.Frames++
		assert.Equal(t, 43, accessor.Get().Frames)
	})

	t.Run("late add is seen by existing accessor", func(t *testing.T) {
		var s ecs.Singleton[Gravity]
		s.Init(storage)
		require.Nil(t, s.Get())

		storage.AddSingleton(Gravity{Pull: 2})
		require.NotNil(t, s.Get())
		assert.Equal(t, float32(2), s.Get().Pull)
	})

	assert.Panics(t, func() { storage.ReadSingleton(FrameCounter{}) })
}
