package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/inspector"
)

// SetupOptions parameterizes the starting scene.
type SetupOptions struct {
	PlaneSize     float32
	MovementSpeed float32
	RotationSpeed float32 // radians per second
}

// DefaultSetupOptions matches the stock scene.
func DefaultSetupOptions() SetupOptions {
	return SetupOptions{
		PlaneSize:     5,
		MovementSpeed: 2,
		RotationSpeed: mgl32.DegToRad(90),
	}
}

// Entities names what Setup spawned.
type Entities struct {
	Plane, Dodecahedron, Light, Camera ecs.EntityId
}

func renderable(name string, t Transform, mesh *Mesh, color mgl32.Vec3) []any {
	return []any{
		inspector.NewMarker(name),
		t,
		globalFrom(t),
		Visible,
		ComputedVisibility{Visible: true},
		MeshHandle{Mesh: mesh},
		MaterialHandle{Material: &Material{Color: color}},
	}
}

// Setup spawns a ground plane, a rhombic dodecahedron above it, a point light
// and a fly camera looking at the origin. It also adds the InputState
// singleton if there is none.
func Setup(storage *ecs.Storage, opts SetupOptions) Entities {
	var e Entities

	e.Plane = storage.Spawn(renderable("Plane", NewTransform(0, 0, 0),
		Plane(opts.PlaneSize), mgl32.Vec3{0.3, 0.5, 0.3})...)

	e.Dodecahedron = storage.Spawn(renderable("Rhombic dodecahedron", NewTransform(0, 1, 0),
		RhombicDodecahedron(), mgl32.Vec3{0.8, 0.7, 0.6})...)

	light := NewTransform(4, 8, 4)
	e.Light = storage.Spawn(
		inspector.NewMarker("Point light"),
		light,
		globalFrom(light),
		DefaultPointLight(),
	)

	camera := NewTransform(-2, 2.5, 5).LookingAt(mgl32.Vec3{}, axisY)
	e.Camera = storage.Spawn(
		inspector.NewMarker("Camera"),
		camera,
		globalFrom(camera),
		DefaultCamera(),
		CameraProperties{MovementSpeed: opts.MovementSpeed, RotationSpeed: opts.RotationSpeed},
	)

	ecs.NewSingleton[InputState](storage)
	return e
}
