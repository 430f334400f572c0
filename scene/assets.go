package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/inspector"
)

// Mesh is a triangle list. Normals has one entry per position.
type Mesh struct {
	Label     string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
}

// Triangles counts complete triangles.
func (m *Mesh) Triangles() int {
	return len(m.Positions) / 3
}

// Material is a flat surface color.
type Material struct {
	Color mgl32.Vec3
}

// MeshHandle refers to a mesh shared between entities. Copies share the mesh.
type MeshHandle struct {
	Mesh *Mesh
}

// MaterialHandle refers to a material shared between entities. Copies share
// the material, so editing one edits all of them.
type MaterialHandle struct {
	Material *Material
}

func (h *MeshHandle) Name() string { return "Mesh" }

func (h *MeshHandle) CloneOnto(target *ecs.EntityCommands) { inspector.Share(target, h) }

func (h *MeshHandle) Remove(target *ecs.EntityCommands) { inspector.Detach[MeshHandle](target) }

func (h *MeshHandle) Render(_ *inspector.EditState, ui inspector.Surface) {
	if h.Mesh == nil {
		ui.Text("(none)")
		return
	}
	ui.Text(fmt.Sprintf("%s: %d vertices, %d triangles", h.Mesh.Label, len(h.Mesh.Positions), h.Mesh.Triangles()))
}

var colorLabels = [3]string{"r", "g", "b"}

func (h *MaterialHandle) Name() string { return "Material" }

func (h *MaterialHandle) CloneOnto(target *ecs.EntityCommands) { inspector.Share(target, h) }

func (h *MaterialHandle) Remove(target *ecs.EntityCommands) { inspector.Detach[MaterialHandle](target) }

func (h *MaterialHandle) Render(_ *inspector.EditState, ui inspector.Surface) {
	if h.Material == nil {
		ui.Text("(none)")
		return
	}
	editColor(ui, &h.Material.Color)
}

// editColor edits an RGB color and keeps each channel in [0, 1].
func editColor(ui inspector.Surface, c *mgl32.Vec3) {
	if inspector.DragVec3(ui, colorLabels, (*[3]float32)(c), 0.005).Changed {
		for i := range c {
			c[i] = mgl32.Clamp(c[i], 0, 1)
		}
	}
}

func fmtVec3(label string, v mgl32.Vec3) string {
	return fmt.Sprintf("%s: %.2f, %.2f, %.2f", label, v[0], v[1], v[2])
}
