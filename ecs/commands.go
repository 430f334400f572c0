package ecs

import "reflect"

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
type Commands struct {
	spawns  []*spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

// NewCommands returns an empty buffer. Systems normally use the buffer on
// their UpdateFrame; callers that run their own pass own a separate one.
func NewCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

// set inserts or replaces the component of the same type.
func (s *spawnCommand) set(component any) {
	t := componentTypeOf(component)
	for i, existing := range s.components {
		if componentTypeOf(existing) == t {
			s.components[i] = component
			return
		}
	}
	s.components = append(s.components, component)
}

func (s *spawnCommand) unset(t reflect.Type) {
	for i, existing := range s.components {
		if componentTypeOf(existing) == t {
			s.components = append(s.components[:i], s.components[i+1:]...)
			return
		}
	}
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after every structural command has been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, &spawnCommand{components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Entity returns a command handle for an existing entity.
func (c *Commands) Entity(entity EntityId) *EntityCommands {
	return &EntityCommands{commands: c, entity: entity}
}

// SpawnEmpty returns a command handle for an entity that will be spawned at
// flush with whatever components were inserted through the handle. A handle
// that never receives a component spawns nothing.
func (c *Commands) SpawnEmpty() *EntityCommands {
	pending := &spawnCommand{}
	c.spawns = append(c.spawns, pending)
	return &EntityCommands{commands: c, pending: pending}
}

// Len counts queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies queued commands to storage in the order deletes, removes,
// adds, spawns, defers, then empties the buffer. Commands aimed at dead or
// already deleted entities are dropped. Several commands against one entity
// all apply even though each migration changes its id.
func (c *Commands) Flush(storage *Storage) {
	deletes, removes, adds, spawns, defers := c.deletes, c.removes, c.adds, c.spawns, c.defers
	c.reset()

	// current id of every entity that migrated during this flush; 0 once deleted
	current := make(map[EntityId]EntityId)
	resolve := func(id EntityId) EntityId {
		if now, ok := current[id]; ok {
			return now
		}
		return id
	}

	for _, entity := range deletes {
		if id := resolve(entity); storage.Alive(id) {
			storage.Delete(id)
		}
		current[entity] = 0
	}

	for _, cmd := range removes {
		id := resolve(cmd.entity)
		if id == 0 || !storage.Alive(id) {
			continue
		}
		current[cmd.entity] = storage.RemoveComponent(id, cmd.compType)
	}

	for _, cmd := range adds {
		id := resolve(cmd.entity)
		if id == 0 || !storage.Alive(id) {
			continue
		}
		current[cmd.entity] = storage.AddComponent(id, cmd.component)
	}

	for _, cmd := range spawns {
		if len(cmd.components) == 0 {
			continue
		}
		storage.Spawn(cmd.components...)
	}

	for _, fn := range defers {
		fn()
	}
}

func (c *Commands) reset() {
	c.spawns = nil
	c.deletes = nil
	c.adds = nil
	c.removes = nil
	c.defers = nil
}

// EntityCommands queues structural changes for one entity, existing or pending.
type EntityCommands struct {
	commands *Commands
	entity   EntityId
	pending  *spawnCommand
}

// Id returns the target entity's id. Pending spawns have no id yet.
func (e *EntityCommands) Id() (EntityId, bool) {
	if e.pending != nil {
		return 0, false
	}
	return e.entity, true
}

// Pending reports whether the target is spawned at flush.
func (e *EntityCommands) Pending() bool {
	return e.pending != nil
}

// Insert attaches component (replacing a previous one of the same type).
func (e *EntityCommands) Insert(component any) *EntityCommands {
	if e.pending != nil {
		e.pending.set(component)
		return e
	}
	e.commands.AddComponent(e.entity, component)
	return e
}

// Remove detaches the component type. Removing an absent type is a no-op.
func (e *EntityCommands) Remove(compType reflect.Type) *EntityCommands {
	if e.pending != nil {
		e.pending.unset(compType)
		return e
	}
	e.commands.RemoveComponent(e.entity, compType)
	return e
}

// Despawn deletes the entity, or cancels a pending spawn.
func (e *EntityCommands) Despawn() {
	if e.pending != nil {
		e.pending.components = nil
		return
	}
	e.commands.Delete(e.entity)
}
