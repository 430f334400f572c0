package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/scene"
)

var background = color.RGBA{R: 0x18, G: 0x1a, B: 0x20, A: 0xff}

type drawable struct {
	*scene.GlobalTransform
	*scene.MeshHandle
	Material *scene.MaterialHandle     `ecs:"optional"`
	Visible  *scene.ComputedVisibility `ecs:"optional"`
}

type viewer struct {
	*scene.Camera
	*scene.GlobalTransform
}

// wireframe draws every visible mesh as projected edges from the first
// camera in the world.
type wireframe struct {
	drawables ecs.Query[drawable]
	cameras   ecs.Query[viewer]
}

func newWireframe(storage *ecs.Storage) *wireframe {
	w := &wireframe{}
	w.drawables.Init(storage)
	w.cameras.Init(storage)
	return w
}

func (w *wireframe) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	bounds := screen.Bounds()
	width, height := float32(bounds.Dx()), float32(bounds.Dy())
	if width == 0 || height == 0 {
		return
	}

	w.cameras.Execute()
	var viewProjection mgl32.Mat4
	found := false
	for cam := range w.cameras.Values() {
		view := scene.Transform{Translation: cam.GlobalTransform.Translation, Rotation: cam.GlobalTransform.Rotation}
		viewProjection = cam.Camera.ViewProjection(view, width/height)
		found = true
		break
	}
	if !found {
		return
	}

	w.drawables.Execute()
	for d := range w.drawables.Values() {
		if d.Mesh == nil || (d.Visible != nil && !d.Visible.Visible) {
			continue
		}
		clr := color.Color(color.White)
		if d.Material != nil && d.Material.Material != nil {
			clr = toColor(d.Material.Material.Color)
		}

		mvp := viewProjection.Mul4(d.GlobalTransform.Matrix)
		for _, edge := range d.Mesh.Edges() {
			x0, y0, ok0 := project(mvp, edge[0], width, height)
			x1, y1, ok1 := project(mvp, edge[1], width, height)
			if !ok0 || !ok1 {
				continue
			}
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
		}
	}
}

// project maps p to screen pixels. ok is false for points behind the camera.
func project(mvp mgl32.Mat4, p mgl32.Vec3, width, height float32) (x, y float32, ok bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-5 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return (ndc.X() + 1) / 2 * width, (1 - ndc.Y()) / 2 * height, true
}

func toColor(c mgl32.Vec3) color.RGBA {
	channel := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1) * 255)
	}
	return color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: 0xff}
}
