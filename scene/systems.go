package scene

import "github.com/plus3/dodeca/ecs"

// TransformSystem writes GlobalTransform from Transform. The scene has no
// hierarchy, so the global value is the local one.
type TransformSystem struct {
	Entities ecs.Query[struct {
		*Transform
		*GlobalTransform
	}]
}

func (s *TransformSystem) Execute(frame *ecs.UpdateFrame) {
	for e := range s.Entities.Values() {
		*e.GlobalTransform = globalFrom(*e.Transform)
	}
}

// VisibilitySystem derives ComputedVisibility. Inherited resolves to visible.
type VisibilitySystem struct {
	Entities ecs.Query[struct {
		*Visibility
		*ComputedVisibility
	}]
}

func (s *VisibilitySystem) Execute(frame *ecs.UpdateFrame) {
	for e := range s.Entities.Values() {
		e.ComputedVisibility.Visible = *e.Visibility != Hidden
	}
}

// RegisterSystems adds the scene systems in update order.
func RegisterSystems(scheduler *ecs.Scheduler) {
	scheduler.Register(&CameraControlSystem{})
	scheduler.Register(&TransformSystem{})
	scheduler.Register(&VisibilitySystem{})
}
