package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/inspector"
)

// PointLight emits in every direction from the entity's position.
type PointLight struct {
	Color     mgl32.Vec3
	Intensity float32
	Range     float32
	Shadows   bool
}

// DefaultPointLight is a white light.
func DefaultPointLight() PointLight {
	return PointLight{
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: 800,
		Range:     20,
	}
}

func (l *PointLight) Name() string { return "PointLight" }

func (l *PointLight) CloneOnto(target *ecs.EntityCommands) { inspector.Insert(target, l) }

func (l *PointLight) Remove(target *ecs.EntityCommands) { inspector.Detach[PointLight](target) }

func (l *PointLight) Render(_ *inspector.EditState, ui inspector.Surface) {
	editColor(ui, &l.Color)
	if ui.DragFloat("Intensity", &l.Intensity, 1).Changed {
		l.Intensity = max(l.Intensity, 0)
	}
	if ui.DragFloat("Range", &l.Range, 0.1).Changed {
		l.Range = max(l.Range, 0)
	}
	ui.Checkbox("Shadows", &l.Shadows)
}
