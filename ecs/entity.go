package ecs

import "fmt"

// EntityId packs the archetype id into the upper 32 bits and the storage slot
// into the lower 32 bits. The zero value never names a live entity.
//
// An entity's id changes whenever it migrates between archetypes (a component
// is added or removed). Hold an EntityRef when an identity must survive that.
type EntityId uint64

// NewEntityId creates an EntityId from an archetype ID and entity index
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the entity index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%08x:%d", e.ArchetypeId(), e.Index())
}

// EntityRef follows an entity across archetype migrations. Id is zero once the
// entity has been deleted.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

func (r *EntityRef) clear() {
	r.Id = 0
	r.Archetype = nil
}
