package inspector

import "github.com/go-gl/mathgl/mgl32"

// EditState holds the one in-progress edit buffer of an inspectable entity:
// rotation angles in degrees while a rotation widget is being used.
type EditState struct {
	angles *mgl32.Vec3
	dirty  bool
	drawn  bool // a rotation widget was drawn since beginPass
}

// Angles returns the cached angles, if an edit session is active.
func (e *EditState) Angles() (mgl32.Vec3, bool) {
	if e == nil || e.angles == nil {
		return mgl32.Vec3{}, false
	}
	return *e.angles, true
}

// Seed starts a session with the value returned by seed unless one is already
// active, and returns the cached angles for editing.
func (e *EditState) Seed(seed func() mgl32.Vec3) *mgl32.Vec3 {
	if e.angles == nil {
		v := seed()
		e.angles = &v
	}
	return e.angles
}

// Active reports whether an edit session is in progress.
func (e *EditState) Active() bool {
	return e != nil && e.angles != nil
}

// MarkDirty records that the cached angles differ from the stored value.
func (e *EditState) MarkDirty() {
	e.dirty = true
}

// Dirty reports whether the session has uncommitted edits.
func (e *EditState) Dirty() bool {
	return e != nil && e.dirty
}

func (e *EditState) beginPass() {
	e.drawn = false
}

// Clear ends the session.
func (e *EditState) Clear() {
	e.angles = nil
	e.dirty = false
}
