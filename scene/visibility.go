package scene

import (
	"fmt"

	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/inspector"
)

// Visibility is the user-chosen visibility of an entity.
type Visibility int

const (
	Inherited Visibility = iota
	Visible
	Hidden
)

var visibilityNames = []string{"Inherited", "Visible", "Hidden"}

func (v Visibility) String() string {
	if v < 0 || int(v) >= len(visibilityNames) {
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
	return visibilityNames[v]
}

func (v *Visibility) Name() string { return "Visibility" }

func (v *Visibility) CloneOnto(target *ecs.EntityCommands) { inspector.Insert(target, v) }

func (v *Visibility) Remove(target *ecs.EntityCommands) { inspector.Detach[Visibility](target) }

func (v *Visibility) Render(_ *inspector.EditState, ui inspector.Surface) {
	current := int(*v)
	if ui.Combo("Mode", &current, visibilityNames) {
		*v = Visibility(current)
	}
}

// ComputedVisibility is whether the entity is drawn this frame. It is
// derived by VisibilitySystem.
type ComputedVisibility struct {
	Visible bool
}

func (c *ComputedVisibility) Name() string { return "ComputedVisibility" }

func (c *ComputedVisibility) CloneOnto(target *ecs.EntityCommands) { inspector.Insert(target, c) }

func (c *ComputedVisibility) Remove(target *ecs.EntityCommands) {
	inspector.Detach[ComputedVisibility](target)
}

func (c *ComputedVisibility) Render(_ *inspector.EditState, ui inspector.Surface) {
	ui.Text(fmt.Sprintf("Visible: %t", c.Visible))
}
