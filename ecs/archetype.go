package ecs

import (
	"reflect"
	"slices"
	"sort"
	"weak"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return typeKey(a[i]) < typeKey(a[j]) }

// typeKey is the identity used for sorting and hashing component types.
// The package path keeps same-named types from different packages apart.
func typeKey(t reflect.Type) string {
	if pkg := t.PkgPath(); pkg != "" {
		return pkg + "." + t.Name()
	}
	return t.String()
}

// archetypeIdFor folds an xxhash64 digest of the sorted type keys into 32 bits.
func archetypeIdFor(types []reflect.Type) uint32 {
	d := xxhash.New()
	for _, t := range types {
		_, _ = d.WriteString(typeKey(t))
		_, _ = d.Write([]byte{0})
	}
	sum := d.Sum64()
	id := uint32(sum) ^ uint32(sum>>32)
	if id == 0 {
		// zero archetype ids would make entity ids indistinguishable from "no entity"
		id = 1
	}
	return id
}

// Archetype stores every entity that has exactly one particular set of
// component types. Each type gets its own column; an entity's slot index is
// the same in every column.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	columns  map[reflect.Type]int
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates an archetype for the given sorted component types.
// Every type must be registered in the registry.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		columns:  make(map[reflect.Type]int, len(types)),
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](256),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
		a.columns[typ] = idx
	}

	return a
}

// Spawn appends one value per column and returns the slot index.
// Components may be passed as values or pointers to values.
func (a *Archetype) Spawn(components []any) uint32 {
	storagePos := -1
	for _, comp := range components {
		col, ok := a.columns[componentTypeOf(comp)]
		if !ok {
			continue
		}
		pos := a.storages[col].Append(comp)
		if storagePos != -1 && pos != storagePos {
			panic("archetype columns out of step")
		}
		storagePos = pos
	}
	if storagePos < 0 {
		panic("archetype spawn with no matching components")
	}
	return uint32(storagePos)
}

// GetComponent returns a pointer to the component of the given type for the
// entity in slot entityIndex, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	col, ok := a.columns[compType]
	if !ok {
		return nil
	}
	return a.storages[col].Get(int(entityIndex))
}

// Alive reports whether slot entityIndex currently holds an entity.
func (a *Archetype) Alive(entityIndex uint32) bool {
	if len(a.storages) == 0 {
		return false
	}
	return a.storages[0].Has(int(entityIndex))
}

// Delete frees the entity's slot in every column. Slot indices of other
// entities are unaffected.
func (a *Archetype) Delete(entityIndex uint32) {
	entityId := NewEntityId(a.id, entityIndex)

	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.clear()
		}
		a.refs.Del(entityId)
	}

	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	_, ok := a.columns[compType]
	return ok
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype. The slice must
// not be modified.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len counts live entities.
func (a *Archetype) Len() int {
	n := 0
	for range a.Iter() {
		n++
	}
	return n
}

// Compact packs every column so live entities occupy the lowest slots.
// Live EntityRefs are rewritten to the new slots.
func (a *Archetype) Compact() {
	if len(a.storages) == 0 {
		return
	}

	indexMap := a.storages[0].Compact()
	for _, storage := range a.storages[1:] {
		storage.Compact()
	}

	moved := make(map[EntityId]weak.Pointer[EntityRef])
	for oldIdx, newIdx := range indexMap {
		weakPtr, ok := a.refs.Get(NewEntityId(a.id, uint32(oldIdx)))
		if !ok {
			continue
		}
		if ref := weakPtr.Value(); ref != nil {
			newId := NewEntityId(a.id, uint32(newIdx))
			ref.Id = newId
			moved[newId] = weakPtr
		}
	}

	a.refs.Clear()
	for id, weakPtr := range moved {
		a.refs.Put(id, weakPtr)
	}
}

// Iter returns an iterator over all valid EntityIds in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

// moveRef re-points a live EntityRef from oldId in a to newId in dst.
func (a *Archetype) moveRef(oldId EntityId, dst *Archetype, newId EntityId) {
	weakPtr, ok := a.refs.Get(oldId)
	if !ok {
		return
	}
	a.refs.Del(oldId)
	ref := weakPtr.Value()
	if ref == nil {
		return
	}
	if dst == nil {
		ref.clear()
		return
	}
	ref.Id = newId
	ref.Archetype = dst
	dst.refs.Put(newId, weakPtr)
}

func sortTypes(types []reflect.Type) []reflect.Type {
	sort.Sort(byTypeName(types))
	return types
}

func containsType(types []reflect.Type, t reflect.Type) bool {
	return slices.Contains(types, t)
}
