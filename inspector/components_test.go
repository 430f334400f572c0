package inspector_test

import (
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/dodeca/ecs"
	"github.com/plus3/dodeca/inspector"
	"github.com/stretchr/testify/require"
)

type Orientation struct {
	Rotation mgl32.Quat
}

type orientationCapability struct {
	*Orientation
	commit inspector.RotationCommit
}

func (o orientationCapability) Name() string { return "Orientation" }

func (o orientationCapability) CloneOnto(target *ecs.EntityCommands) {
	inspector.Insert(target, o.Orientation)
}

func (o orientationCapability) Remove(target *ecs.EntityCommands) {
	inspector.Detach[Orientation](target)
}

func (o orientationCapability) Render(edit *inspector.EditState, ui inspector.Surface) {
	inspector.EditRotation(edit, ui, &o.Rotation, o.commit)
}

type Visibility int

const (
	Visible Visibility = iota
	Hidden
)

var visibilityNames = []string{"Visible", "Hidden"}

func (v *Visibility) Name() string { return "Visibility" }

func (v *Visibility) CloneOnto(target *ecs.EntityCommands) { inspector.Insert(target, v) }

func (v *Visibility) Remove(target *ecs.EntityCommands) { inspector.Detach[Visibility](target) }

func (v *Visibility) Render(_ *inspector.EditState, ui inspector.Surface) {
	current := int(*v)
	if ui.Combo("Mode", &current, visibilityNames) {
		*v = Visibility(current)
	}
}

type Tags struct {
	Values []string
}

func (t *Tags) Name() string { return "Tags" }

func (t *Tags) CloneOnto(target *ecs.EntityCommands) { inspector.Insert(target, t) }

func (t *Tags) Remove(target *ecs.EntityCommands) { inspector.Detach[Tags](target) }

func (t *Tags) Render(_ *inspector.EditState, ui inspector.Surface) {
	for i := range t.Values {
		ui.InputText(fmt.Sprintf("Tag %d", i), &t.Values[i])
	}
}

// Fuse panics while rendering when Lit is set.
type Fuse struct {
	Lit bool
}

func (f *Fuse) Name() string { return "Fuse" }

func (f *Fuse) CloneOnto(target *ecs.EntityCommands) { inspector.Insert(target, f) }

func (f *Fuse) Remove(target *ecs.EntityCommands) { inspector.Detach[Fuse](target) }

func (f *Fuse) Render(_ *inspector.EditState, ui inspector.Surface) {
	if ui.BeginSection("Wick") {
		if f.Lit {
			panic("boom")
		}
		ui.EndSection()
	}
}

// Unlisted is stored on entities but never registered with the inspector.
type Unlisted struct {
	N int
}

type world struct {
	storage  *ecs.Storage
	registry *inspector.Registry
}

func newWorld(t *testing.T, commit inspector.RotationCommit) *world {
	t.Helper()

	components := ecs.NewComponentRegistry()
	inspector.RegisterComponents(components)
	ecs.RegisterComponent[Orientation](components)
	ecs.RegisterComponent[Visibility](components)
	ecs.RegisterComponent[Tags](components)
	ecs.RegisterComponent[Fuse](components)
	ecs.RegisterComponent[Unlisted](components)
	ecs.RegisterComponent[Saboteur](components)

	registry := inspector.NewRegistry()
	require.NoError(t, inspector.RegisterFunc(registry, func(o *Orientation) inspector.Capability {
		return orientationCapability{Orientation: o, commit: commit}
	}))
	require.NoError(t, inspector.Register[Visibility](registry))
	require.NoError(t, inspector.Register[Tags](registry))
	require.NoError(t, inspector.Register[Fuse](registry))

	return &world{storage: ecs.NewStorage(components), registry: registry}
}

// find returns the entity whose marker carries name.
func (w *world) find(t *testing.T, name string) ecs.EntityId {
	t.Helper()
	view := ecs.NewView[struct {
		Id ecs.EntityId
		*inspector.Marker
	}](w.storage)

	var found []ecs.EntityId
	for row := range view.Values() {
		if row.Name == name {
			found = append(found, row.Id)
		}
	}
	require.Len(t, found, 1, "entities named %q", name)
	return found[0]
}

func (w *world) marker(id ecs.EntityId) *inspector.Marker {
	return ecs.ReadComponent[inspector.Marker](w.storage, id)
}

func assertSameRotation(t *testing.T, want, got mgl32.Quat) {
	t.Helper()
	dot := want.Normalize().Dot(got.Normalize())
	if dot < 0 {
		dot = -dot
	}
	require.InDelta(t, 1, dot, 1e-5, "want %v got %v", want, got)
}

func (w *world) storageVisibility(id ecs.EntityId) *Visibility {
	return ecs.ReadComponent[Visibility](w.storage, id)
}
