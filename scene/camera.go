package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/inspector"
)

// Camera is a perspective projection. FovY is in radians.
type Camera struct {
	FovY float32
	Near float32
	Far  float32
}

// DefaultCamera has a 45 degree vertical field of view.
func DefaultCamera() Camera {
	return Camera{FovY: mgl32.DegToRad(45), Near: 0.1, Far: 100}
}

// ViewProjection maps world space to clip space for a camera placed at view.
func (c Camera) ViewProjection(view Transform, aspect float32) mgl32.Mat4 {
	projection := mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
	return projection.Mul4(view.Rotation.Conjugate().Mat4()).
		Mul4(mgl32.Translate3D(-view.Translation[0], -view.Translation[1], -view.Translation[2]))
}

func (c *Camera) Name() string { return "Camera" }

func (c *Camera) CloneOnto(target *ecs.EntityCommands) { inspector.Insert(target, c) }

func (c *Camera) Remove(target *ecs.EntityCommands) { inspector.Detach[Camera](target) }

func (c *Camera) Render(_ *inspector.EditState, ui inspector.Surface) {
	fov := mgl32.RadToDeg(c.FovY)
	if ui.DragFloat("FOV", &fov, 0.5).Changed {
		c.FovY = mgl32.DegToRad(mgl32.Clamp(fov, 1, 179))
	}
	if ui.DragFloat("Near", &c.Near, 0.01).Changed {
		c.Near = mgl32.Clamp(c.Near, 0.001, c.Far)
	}
	if ui.DragFloat("Far", &c.Far, 1).Changed {
		c.Far = max(c.Far, c.Near+0.001)
	}
}

// CameraProperties tunes the fly controls. RotationSpeed is in radians per second.
type CameraProperties struct {
	MovementSpeed float32
	RotationSpeed float32
}

func (p *CameraProperties) Name() string { return "CameraProperties" }

func (p *CameraProperties) CloneOnto(target *ecs.EntityCommands) { inspector.Insert(target, p) }

func (p *CameraProperties) Remove(target *ecs.EntityCommands) {
	inspector.Detach[CameraProperties](target)
}

func (p *CameraProperties) Render(_ *inspector.EditState, ui inspector.Surface) {
	ui.DragFloat("Movement speed", &p.MovementSpeed, 0.05)
	degrees := mgl32.RadToDeg(p.RotationSpeed)
	if ui.DragFloat("Rotation speed (°/s)", &degrees, 1).Changed {
		p.RotationSpeed = mgl32.DegToRad(degrees)
	}
	ui.Text(fmt.Sprintf("%.3f rad/s", p.RotationSpeed))
}

// Key is a fly-control action.
type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPitchUp
	KeyPitchDown
	KeyYawLeft
	KeyYawRight
	KeyRollLeft
	KeyRollRight
	keyCount
)

// InputState is the singleton the host fills each frame with held keys.
type InputState struct {
	Held [keyCount]bool
}

// Pressed reports whether k is held.
func (s *InputState) Pressed(k Key) bool {
	return k >= 0 && k < keyCount && s.Held[k]
}

// Set records k as held or released.
func (s *InputState) Set(k Key, held bool) {
	if k >= 0 && k < keyCount {
		s.Held[k] = held
	}
}

// Clear releases every key.
func (s *InputState) Clear() {
	s.Held = [keyCount]bool{}
}

// CameraControlSystem flies every entity with CameraProperties.
type CameraControlSystem struct {
	Input   ecs.Singleton[InputState]
	Cameras ecs.Query[struct {
		*Transform
		*CameraProperties
	}]
}

func (s *CameraControlSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if input == nil {
		return
	}
	dt := float32(frame.DeltaTime)

	for camera := range s.Cameras.Values() {
		t := camera.Transform
		step := camera.MovementSpeed * dt
		turn := camera.RotationSpeed * dt

		move := func(k Key, dir mgl32.Vec3) {
			if input.Pressed(k) {
				t.Translation = t.Translation.Add(dir.Mul(step))
			}
		}
		move(KeyForward, t.Forward())
		move(KeyBack, t.Forward().Mul(-1))
		move(KeyLeft, t.Right().Mul(-1))
		move(KeyRight, t.Right())
		move(KeyUp, t.Up())
		move(KeyDown, t.Up().Mul(-1))

		if input.Pressed(KeyPitchUp) {
			t.RotateLocalX(turn)
		}
		if input.Pressed(KeyPitchDown) {
			t.RotateLocalX(-turn)
		}
		if input.Pressed(KeyYawLeft) {
			t.RotateLocalY(turn)
		}
		if input.Pressed(KeyYawRight) {
			t.RotateLocalY(-turn)
		}
		if input.Pressed(KeyRollLeft) {
			t.RotateLocalZ(turn)
		}
		if input.Pressed(KeyRollRight) {
			t.RotateLocalZ(-turn)
		}
	}
}
