package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to storage factories. Each Storage
// owns one, so independent worlds do not interfere.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent makes T storable. It must be called for each component
// type before the type is spawned, added or used as a singleton.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// IsRegistered reports whether t has a storage factory.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const genericBlockSize = 64

// genericComponentStorage keeps values of T in separately allocated
// fixed-size blocks. Growing the block list never moves a value, so pointers
// handed out by Get stay valid until the slot is deleted or Compact runs.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    []*[genericBlockSize]bool
	freeSlots []int
	nextIndex int
}

func slotOf(index int) (block, slot int) {
	return index / genericBlockSize, index % genericBlockSize
}

func (cs *genericComponentStorage[T]) inRange(index int) bool {
	return index >= 0 && index/genericBlockSize < len(cs.blocks)
}

// Append stores item (a T or *T) and returns its slot, or -1 for a foreign type.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
	}

	block, slot := slotOf(index)
	for block >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
		cs.filled = append(cs.filled, new([genericBlockSize]bool))
	}

	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	return index
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	block, slot := slotOf(index)
	return &cs.blocks[block][slot]
}

// Delete empties the slot and zeroes its value.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	block, slot := slotOf(index)
	var zero T
	cs.filled[block][slot] = false
	cs.blocks[block][slot] = zero
	cs.freeSlots = append(cs.freeSlots, index)
}

func (cs *genericComponentStorage[T]) Has(index int) bool {
	if !cs.inRange(index) {
		return false
	}
	block, slot := slotOf(index)
	return cs.filled[block][slot]
}

// Compact moves live values to the front and returns old slot -> new slot.
// Pointers from Get are invalid afterwards.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int)

	live := cs.nextIndex - len(cs.freeSlots)
	if live <= 0 {
		cs.blocks = []*[genericBlockSize]T{new([genericBlockSize]T)}
		cs.filled = []*[genericBlockSize]bool{new([genericBlockSize]bool)}
		cs.freeSlots = nil
		cs.nextIndex = 0
		return indexMap
	}

	numBlocks := (live + genericBlockSize - 1) / genericBlockSize
	blocks := make([]*[genericBlockSize]T, numBlocks)
	filled := make([]*[genericBlockSize]bool, numBlocks)
	for i := range blocks {
		blocks[i] = new([genericBlockSize]T)
		filled[i] = new([genericBlockSize]bool)
	}

	write := 0
	for read := range cs.Iter() {
		rb, rs := slotOf(read)
		wb, ws := slotOf(write)
		blocks[wb][ws] = cs.blocks[rb][rs]
		filled[wb][ws] = true
		indexMap[read] = write
		write++
	}

	cs.blocks = blocks
	cs.filled = filled
	cs.freeSlots = nil
	cs.nextIndex = write
	return indexMap
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if cs.Has(i) && !yield(i) {
				return
			}
		}
	}
}
