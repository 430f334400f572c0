package inspector

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RotationCommit selects when edited angles are written back to the quaternion.
type RotationCommit int

const (
	// CommitLive recomposes the quaternion on every edit.
	CommitLive RotationCommit = iota
	// CommitOnRelease recomposes once, when the edit session ends.
	CommitOnRelease
)

func (c RotationCommit) String() string {
	switch c {
	case CommitLive:
		return "live"
	case CommitOnRelease:
		return "release"
	}
	return fmt.Sprintf("RotationCommit(%d)", int(c))
}

// ParseRotationCommit accepts "live" or "release".
func ParseRotationCommit(s string) (RotationCommit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "live":
		return CommitLive, nil
	case "release", "on-release":
		return CommitOnRelease, nil
	}
	return CommitLive, fmt.Errorf("%w: %q", ErrUnknownCommitMode, s)
}

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}

	angleLabels = [3]string{"Yaw", "Pitch", "Roll"}
)

// gimbalLimit is the |sin(pitch)| above which yaw and roll are not separable.
const gimbalLimit = 0.99999

// FromEulerYXZ builds the rotation that applies roll about Z, then pitch about
// X, then yaw about Y. Angles are in radians.
func FromEulerYXZ(yaw, pitch, roll float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, axisY).
		Mul(mgl32.QuatRotate(pitch, axisX)).
		Mul(mgl32.QuatRotate(roll, axisZ))
}

// EulerYXZ is the inverse of FromEulerYXZ. Pitch is in [-π/2, π/2]; at the
// poles roll is reported as zero and the whole twist goes to yaw.
func EulerYXZ(q mgl32.Quat) (yaw, pitch, roll float32) {
	if l := q.Len(); l == 0 || math32.IsNaN(l) || math32.IsInf(l, 0) {
		return 0, 0, 0
	}
	q = q.Normalize()
	w, x, y, z := q.W, q.V[0], q.V[1], q.V[2]

	m12 := 2 * (y*z - w*x)
	sinPitch := clamp(-m12, -1, 1)
	pitch = math32.Asin(sinPitch)

	if math32.Abs(sinPitch) < gimbalLimit {
		m02 := 2 * (x*z + w*y)
		m22 := 1 - 2*(x*x+y*y)
		m10 := 2 * (x*y + w*z)
		m11 := 1 - 2*(x*x+z*z)
		yaw = math32.Atan2(m02, m22)
		roll = math32.Atan2(m10, m11)
		return yaw, pitch, roll
	}

	m20 := 2 * (x*z - w*y)
	m00 := 1 - 2*(y*y+z*z)
	return math32.Atan2(-m20, m00), pitch, 0
}

// eulerDegrees decomposes q into (yaw, pitch, roll) in degrees.
func eulerDegrees(q mgl32.Quat) mgl32.Vec3 {
	yaw, pitch, roll := EulerYXZ(q)
	return mgl32.Vec3{mgl32.RadToDeg(yaw), mgl32.RadToDeg(pitch), mgl32.RadToDeg(roll)}
}

func fromDegrees(angles mgl32.Vec3) mgl32.Quat {
	return FromEulerYXZ(mgl32.DegToRad(angles[0]), mgl32.DegToRad(angles[1]), mgl32.DegToRad(angles[2]))
}

func finite(v mgl32.Vec3) bool {
	for _, f := range v {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// EditRotation draws yaw, pitch and roll fields in degrees for q.
//
// While any of the fields is focused or dragged the angles live in edit and
// are not re-derived from q. The session ends, and edit is cleared, on the
// first call in which none of the fields is in use. With CommitLive q is
// rebuilt on every change; with CommitOnRelease it is rebuilt once when the
// session ends. Reports whether q was written.
func EditRotation(edit *EditState, ui Surface, q *mgl32.Quat, commit RotationCommit) bool {
	edit.drawn = true

	var scratch mgl32.Vec3
	angles := &scratch
	if edit.Active() {
		angles = edit.angles
	} else {
		scratch = eulerDegrees(*q)
	}

	r := DragVec3(ui, angleLabels, (*[3]float32)(angles), 0.5)

	if !edit.Active() && (r.Changed || r.Active()) {
		angles = edit.Seed(func() mgl32.Vec3 { return scratch })
	}

	written := false
	if r.Changed && finite(*angles) {
		if commit == CommitLive {
			*q = fromDegrees(*angles)
			written = true
		} else {
			edit.MarkDirty()
		}
	}

	if !r.Active() {
		if edit.Dirty() && finite(*angles) {
			*q = fromDegrees(*angles)
			written = true
		}
		edit.Clear()
	}
	return written
}

// ShowRotation displays q as degrees without touching any edit session.
func ShowRotation(ui Surface, q mgl32.Quat) {
	angles := eulerDegrees(q)
	for i, label := range angleLabels {
		ui.Text(fmt.Sprintf("%s: %.2f°", label, angles[i]))
	}
}
