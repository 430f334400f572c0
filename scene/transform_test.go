package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/dodeca/scene"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d: want %v got %v", i, want, got)
	}
}

func TestTransformAxes(t *testing.T) {
	tr := scene.NewTransform(1, 2, 3)

	assertVec3(t, mgl32.Vec3{0, 0, -1}, tr.Forward())
	assertVec3(t, mgl32.Vec3{1, 0, 0}, tr.Right())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, tr.Up())

	tr.RotateLocalY(mgl32.DegToRad(90))
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, tr.Forward())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, tr.Up())
}

func TestTransformLookingAt(t *testing.T) {
	eye := scene.NewTransform(-2, 2.5, 5)
	target := mgl32.Vec3{}

	looking := eye.LookingAt(target, mgl32.Vec3{0, 1, 0})
	want := target.Sub(eye.Translation).Normalize()

	assertVec3(t, want, looking.Forward())
	assert.InDelta(t, 0, looking.Right()[1], 1e-5, "no roll")
	assert.Equal(t, eye.Translation, looking.Translation)

	same := eye.LookingAt(eye.Translation, mgl32.Vec3{0, 1, 0})
	assert.Equal(t, eye, same)
}

func TestTransformMatrix(t *testing.T) {
	tr := scene.NewTransform(1, 0, 0)
	tr.Scale = mgl32.Vec3{2, 2, 2}
	tr.RotateLocalZ(mgl32.DegToRad(90))

	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.Matrix())
	assertVec3(t, mgl32.Vec3{1, 2, 0}, p)
}

func TestCameraViewProjection(t *testing.T) {
	view := scene.NewTransform(0, 0, 5)
	camera := scene.DefaultCamera()

	clip := camera.ViewProjection(view, 1).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip[3])

	assert.InDelta(t, 0, ndc[0], 1e-5)
	assert.InDelta(t, 0, ndc[1], 1e-5)
	assert.Greater(t, ndc[2], float32(-1))
	assert.Less(t, ndc[2], float32(1))
}
