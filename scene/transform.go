package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/inspector"
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// Transform places an entity in the world. Rotation is a unit quaternion.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// NewTransform returns an unrotated, unscaled transform at (x, y, z).
func NewTransform(x, y, z float32) Transform {
	return Transform{
		Translation: mgl32.Vec3{x, y, z},
		Rotation:    mgl32.QuatIdent(),
		Scale:       mgl32.Vec3{1, 1, 1},
	}
}

// LookingAt returns t rotated so that its forward axis points at target.
func (t Transform) LookingAt(target, up mgl32.Vec3) Transform {
	forward := target.Sub(t.Translation)
	if forward.Len() == 0 {
		return t
	}
	forward = forward.Normalize()
	right := forward.Cross(up)
	if right.Len() == 0 {
		right = axisX
	}
	right = right.Normalize()
	trueUp := right.Cross(forward)

	basis := mgl32.Mat4FromCols(right.Vec4(0), trueUp.Vec4(0), forward.Mul(-1).Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	t.Rotation = mgl32.Mat4ToQuat(basis).Normalize()
	return t
}

// Matrix is translation * rotation * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Forward is the local -Z axis in world space.
func (t Transform) Forward() mgl32.Vec3 { return t.Rotation.Rotate(axisZ.Mul(-1)) }

// Right is the local +X axis in world space.
func (t Transform) Right() mgl32.Vec3 { return t.Rotation.Rotate(axisX) }

// Up is the local +Y axis in world space.
func (t Transform) Up() mgl32.Vec3 { return t.Rotation.Rotate(axisY) }

func (t *Transform) rotateLocal(angle float32, axis mgl32.Vec3) {
	t.Rotation = t.Rotation.Mul(mgl32.QuatRotate(angle, axis)).Normalize()
}

// RotateLocalX pitches about the transform's own X axis.
func (t *Transform) RotateLocalX(angle float32) { t.rotateLocal(angle, axisX) }

// RotateLocalY yaws about the transform's own Y axis.
func (t *Transform) RotateLocalY(angle float32) { t.rotateLocal(angle, axisY) }

// RotateLocalZ rolls about the transform's own Z axis.
func (t *Transform) RotateLocalZ(angle float32) { t.rotateLocal(angle, axisZ) }

// GlobalTransform is the world-space result of a Transform. It is written by
// TransformSystem and is read-only in the inspector.
type GlobalTransform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
	Matrix      mgl32.Mat4
}

func globalFrom(t Transform) GlobalTransform {
	return GlobalTransform{
		Translation: t.Translation,
		Rotation:    t.Rotation,
		Scale:       t.Scale,
		Matrix:      t.Matrix(),
	}
}

var (
	positionLabels = [3]string{"x", "y", "z"}
	scaleLabels    = [3]string{"sx", "sy", "sz"}
)

type transformInspector struct {
	*Transform
	commit inspector.RotationCommit
}

func (t transformInspector) Name() string { return "Transform" }

func (t transformInspector) CloneOnto(target *ecs.EntityCommands) {
	inspector.Insert(target, t.Transform)
}

func (t transformInspector) Remove(target *ecs.EntityCommands) {
	inspector.Detach[Transform](target)
}

func (t transformInspector) Render(edit *inspector.EditState, ui inspector.Surface) {
	ui.Text("Position")
	inspector.DragVec3(ui, positionLabels, (*[3]float32)(&t.Translation), 0.01)
	ui.Text("Rotation")
	inspector.EditRotation(edit, ui, &t.Rotation, t.commit)
	ui.Text("Scale")
	inspector.DragVec3(ui, scaleLabels, (*[3]float32)(&t.Scale), 0.01)
}

func (g *GlobalTransform) Name() string { return "GlobalTransform" }

func (g *GlobalTransform) CloneOnto(target *ecs.EntityCommands) { inspector.Insert(target, g) }

func (g *GlobalTransform) Remove(target *ecs.EntityCommands) { inspector.Detach[GlobalTransform](target) }

func (g *GlobalTransform) Render(_ *inspector.EditState, ui inspector.Surface) {
	ui.Text(fmtVec3("Position", g.Translation))
	inspector.ShowRotation(ui, g.Rotation)
	ui.Text(fmtVec3("Scale", g.Scale))
}
