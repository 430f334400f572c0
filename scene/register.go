package scene

import (
	"errors"

	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/inspector"
)

// RegisterComponents registers every scene component type, and the inspector
// marker, with the ECS.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	inspector.RegisterComponents(registry)
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[GlobalTransform](registry)
	ecs.RegisterComponent[Visibility](registry)
	ecs.RegisterComponent[ComputedVisibility](registry)
	ecs.RegisterComponent[MeshHandle](registry)
	ecs.RegisterComponent[MaterialHandle](registry)
	ecs.RegisterComponent[PointLight](registry)
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[CameraProperties](registry)
}

// InspectOptions configures how scene components are edited.
type InspectOptions struct {
	RotationCommit inspector.RotationCommit
}

// RegisterCapabilities makes every scene component inspectable. Sections
// appear in registration order.
func RegisterCapabilities(registry *inspector.Registry, opts InspectOptions) error {
	return errors.Join(
		inspector.RegisterFunc(registry, func(t *Transform) inspector.Capability {
			return transformInspector{Transform: t, commit: opts.RotationCommit}
		}),
		inspector.Register[GlobalTransform](registry),
		inspector.Register[Visibility](registry),
		inspector.Register[ComputedVisibility](registry),
		inspector.Register[MeshHandle](registry),
		inspector.Register[MaterialHandle](registry),
		inspector.Register[PointLight](registry),
		inspector.Register[Camera](registry),
		inspector.Register[CameraProperties](registry),
	)
}
