package inspector

import (
	"bytes"

	"github.com/google/uuid"
	"github.com/plus3/dodeca/ecs"
)

// Marker makes an entity visible to the Controller. Entities are listed in
// order of ID, which is a version 7 UUID and therefore follows creation time.
// Build markers with NewMarker. The Controller assigns a fresh ID to a marker
// whose ID is uuid.Nil the first time it lists it.
type Marker struct {
	ID   uuid.UUID
	Name string

	edit *EditState
}

// NewMarker returns a marker with a fresh id.
func NewMarker(name string) Marker {
	return Marker{ID: uuid.Must(uuid.NewV7()), Name: name}
}

// Edit returns the entity's edit state, creating it on first use.
func (m *Marker) Edit() *EditState {
	if m.edit == nil {
		m.edit = &EditState{}
	}
	return m.edit
}

// Duplicate returns a marker for a copy of the entity: a new id, the name with
// suffix appended and no edit session.
func (m Marker) Duplicate(suffix string) Marker {
	return NewMarker(m.Name + suffix)
}

func (m *Marker) before(other *Marker) bool {
	return bytes.Compare(m.ID[:], other.ID[:]) < 0
}

// RegisterComponents registers the component types this package stores.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Marker](registry)
}
