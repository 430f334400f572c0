package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/inspector"
	"github.com/plus3/dodeca/inspector/inspectortest"
	"github.com/plus3/dodeca/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	entities  scene.Entities
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	components := ecs.NewComponentRegistry()
	scene.RegisterComponents(components)
	storage := ecs.NewStorage(components)

	scheduler := ecs.NewScheduler(storage)
	scene.RegisterSystems(scheduler)

	return &fixture{
		storage:   storage,
		scheduler: scheduler,
		entities:  scene.Setup(storage, scene.DefaultSetupOptions()),
	}
}

func TestSetup(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 4, f.storage.CollectStats().TotalEntityCount)
	for _, id := range []ecs.EntityId{f.entities.Plane, f.entities.Dodecahedron, f.entities.Light, f.entities.Camera} {
		require.NotNil(t, ecs.ReadComponent[inspector.Marker](f.storage, id))
		require.NotNil(t, ecs.ReadComponent[scene.Transform](f.storage, id))
	}

	mesh := ecs.ReadComponent[scene.MeshHandle](f.storage, f.entities.Dodecahedron)
	require.NotNil(t, mesh)
	assert.Len(t, mesh.Mesh.Positions, 72)

	camera := ecs.ReadComponent[scene.Transform](f.storage, f.entities.Camera)
	toOrigin := camera.Translation.Mul(-1).Normalize()
	assert.InDelta(t, 1, camera.Forward().Dot(toOrigin), 1e-4)

	var input scene.InputState
	ptr := &input
	assert.True(t, f.storage.ReadSingleton(&ptr))
}

func TestTransformAndVisibilitySystems(t *testing.T) {
	f := newFixture(t)
	id := f.entities.Dodecahedron

	ecs.ReadComponent[scene.Transform](f.storage, id).Translation = mgl32.Vec3{3, 1, 0}
	*ecs.ReadComponent[scene.Visibility](f.storage, id) = scene.Hidden
	f.scheduler.Once(0.01)

	global := ecs.ReadComponent[scene.GlobalTransform](f.storage, id)
	assert.Equal(t, mgl32.Vec3{3, 1, 0}, global.Translation)
	assert.Equal(t, mgl32.Translate3D(3, 1, 0), global.Matrix)
	assert.False(t, ecs.ReadComponent[scene.ComputedVisibility](f.storage, id).Visible)

	*ecs.ReadComponent[scene.Visibility](f.storage, id) = scene.Inherited
	f.scheduler.Once(0.01)
	assert.True(t, ecs.ReadComponent[scene.ComputedVisibility](f.storage, id).Visible)
}

func TestCameraControlSystem(t *testing.T) {
	f := newFixture(t)
	input := ecs.NewSingleton[scene.InputState](f.storage).Get()
	camera := ecs.ReadComponent[scene.Transform](f.storage, f.entities.Camera)
	start := *camera

	input.Set(scene.KeyForward, true)
	f.scheduler.Once(0.5)

	moved := camera.Translation.Sub(start.Translation)
	assert.InDelta(t, 1, moved.Len(), 1e-4, "2 units/s for half a second")
	assert.InDelta(t, 1, moved.Normalize().Dot(start.Forward()), 1e-4)

	input.Clear()
	input.Set(scene.KeyYawLeft, true)
	f.scheduler.Once(1)

	angle := mgl32.RadToDeg(acos(clampUnit(camera.Forward().Dot(start.Forward()))))
	assert.InDelta(t, 90, angle, 0.5)
	assert.True(t, input.Pressed(scene.KeyYawLeft))
	assert.False(t, input.Pressed(scene.Key(99)))
}

func TestInspectScene(t *testing.T) {
	f := newFixture(t)
	registry := inspector.NewRegistry()
	require.NoError(t, scene.RegisterCapabilities(registry, scene.InspectOptions{RotationCommit: inspector.CommitLive}))
	assert.ErrorIs(t, scene.RegisterCapabilities(registry, scene.InspectOptions{}), inspector.ErrDuplicateRegistration)

	controller := inspector.NewController(f.storage, registry, inspector.Options{})
	dodeca := ecs.ReadComponent[inspector.Marker](f.storage, f.entities.Dodecahedron).ID.String()

	ui := inspectortest.New().
		Drag(dodeca+"/Transform/x", 2, false).
		Drag(dodeca+"/Transform/Yaw", 90, true).
		Click(dodeca + "/Duplicate")
	result := controller.Pass(ui)
	require.Equal(t, 1, result.Duplicated)
	assert.True(t, ui.WasDrawn(dodeca+"/GlobalTransform"))

	transform := ecs.ReadComponent[scene.Transform](f.storage, f.entities.Dodecahedron)
	assert.Equal(t, float32(2), transform.Translation[0])
	assert.InDelta(t, 1, mgl32.Vec3{-1, 0, 0}.Dot(transform.Forward()), 1e-4)

	view := ecs.NewView[struct {
		*inspector.Marker
		*scene.Transform
		*scene.MeshHandle
		*scene.MaterialHandle
	}](f.storage)

	var original, clone *scene.MeshHandle
	var originalMaterial, cloneMaterial *scene.MaterialHandle
	for row := range view.Values() {
		switch row.Marker.Name {
		case "Rhombic dodecahedron":
			original, originalMaterial = row.MeshHandle, row.MaterialHandle
		case "Rhombic dodecahedron (copy)":
			clone, cloneMaterial = row.MeshHandle, row.MaterialHandle
			assert.Equal(t, transform.Translation, row.Transform.Translation)
		}
	}
	require.NotNil(t, original)
	require.NotNil(t, clone)
	assert.Same(t, original.Mesh, clone.Mesh, "meshes are shared")
	assert.Same(t, originalMaterial.Material, cloneMaterial.Material, "materials are shared")
}

func TestReadOnlyComponentsIgnoreInput(t *testing.T) {
	f := newFixture(t)
	registry := inspector.NewRegistry()
	require.NoError(t, scene.RegisterCapabilities(registry, scene.InspectOptions{}))
	controller := inspector.NewController(f.storage, registry, inspector.Options{})

	f.scheduler.Once(0.01)
	global := *ecs.ReadComponent[scene.GlobalTransform](f.storage, f.entities.Light)

	ui := inspectortest.New().Drag("GlobalTransform/Yaw", 45, true)
	controller.Pass(ui)

	assert.Equal(t, global, *ecs.ReadComponent[scene.GlobalTransform](f.storage, f.entities.Light))
	assert.Equal(t, 1, ui.Pending(), "no drag field drawn for derived transforms")
	light := ecs.ReadComponent[inspector.Marker](f.storage, f.entities.Light)
	assert.False(t, light.Edit().Active())
}
