package ecs

import (
	"reflect"
	"sort"
	"weak"
)

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// CreateEntityRef returns the shared EntityRef for id, creating it on first
// use. Returns nil if the entity does not exist.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	if !s.Alive(id) {
		return nil
	}
	archetype := s.archetypes[id.ArchetypeId()]

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the entity's current id, or false once it has been
// deleted.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting the entity.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.Id == 0 {
		return false
	}

	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.clear()
	return true
}

// GetArchetype returns the archetype holding exactly the given component
// types, or nil.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.archetypes[archetypeIdFor(extractComponentTypes(components))]
}

// GetArchetypeByTypes is GetArchetype for reflect.Types. types is sorted in place.
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	return s.archetypes[archetypeIdFor(sortTypes(types))]
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// GetArchetypes returns every archetype ordered by id.
func (s *Storage) GetArchetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, a := range s.archetypes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := archetypeIdFor(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
	}
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

// Alive reports whether id currently names an entity.
func (s *Storage) Alive(id EntityId) bool {
	if id == 0 {
		return false
	}
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Alive(id.Index())
}

// Delete removes all data related to the entity ID. Deleting a dead id is a no-op.
func (s *Storage) Delete(id EntityId) {
	if !s.Alive(id) {
		return
	}
	s.archetypes[id.ArchetypeId()].Delete(id.Index())
}

// AddComponent attaches component to the entity and returns the entity's new
// id. If the entity already has a component of that type its value is
// replaced in place and the id is unchanged. Returns 0 for dead entities.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	if !s.Alive(id) {
		return 0
	}
	oldArchetype := s.archetypes[id.ArchetypeId()]
	compType := componentTypeOf(component)

	if existing := oldArchetype.GetComponent(id.Index(), compType); existing != nil {
		reflect.ValueOf(existing).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	return s.migrate(id, sortTypes(newTypes), component)
}

// RemoveComponent detaches compType from the entity and returns the entity's
// new id. Removing a type the entity does not have is a no-op. Removing the
// last component deletes the entity and returns 0, as does a dead id.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	if !s.Alive(id) {
		return 0
	}
	oldArchetype := s.archetypes[id.ArchetypeId()]
	if !oldArchetype.HasComponent(compType) {
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		oldArchetype.Delete(id.Index())
		return 0
	}
	return s.migrate(id, newTypes, nil)
}

// migrate copies the entity into the archetype for newTypes, taking extra for
// the one type the old archetype lacks, and frees the old slot.
func (s *Storage) migrate(id EntityId, newTypes []reflect.Type, extra any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	newArchetype := s.archetypeFor(newTypes)

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if comp := oldArchetype.GetComponent(id.Index(), typ); comp != nil {
			components = append(components, comp)
			continue
		}
		components = append(components, extra)
	}

	newId := NewEntityId(newArchetype.id, newArchetype.Spawn(components))
	oldArchetype.moveRef(id, newArchetype, newId)
	oldArchetype.Delete(id.Index())
	return newId
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	return s.Alive(id) && s.archetypes[id.ArchetypeId()].HasComponent(compType)
}

// ComponentTypes returns the sorted types attached to the entity, or nil.
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	if !s.Alive(id) {
		return nil
	}
	return s.archetypes[id.ArchetypeId()].Types()
}

// extractComponentTypes returns the sorted value types of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentTypeOf(comp)

		// Components can be structs or primitives but not reference kinds.
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		if containsType(types, compType) {
			panic("duplicate component type " + compType.String())
		}

		types = append(types, compType)
	}
	return sortTypes(types)
}

// ComponentReader is the read side of Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's *T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
