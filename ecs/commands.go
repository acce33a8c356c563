package ecs

// Commands buffers structural changes queued by systems during an update.
// The SystemManager applies them after every system has run.
type Commands struct {
	creates []createCommand
	deletes []EntityId
	adds    []componentCommand
	removes []componentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type createCommand struct {
	types []ComponentType
	init  func(*Entity)
}

type componentCommand struct {
	entity EntityId
	types  []ComponentType
}

// Create queues the creation of an entity with the given component types.
func (c *Commands) Create(types ...ComponentType) {
	c.creates = append(c.creates, createCommand{types: types})
}

// CreateWith queues an entity creation; init runs on the new entity right
// after it is created.
func (c *Commands) CreateWith(init func(*Entity), types ...ComponentType) {
	c.creates = append(c.creates, createCommand{types: types, init: init})
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Add queues the addition of zero-valued components.
func (c *Commands) Add(entity EntityId, types ...ComponentType) {
	c.adds = append(c.adds, componentCommand{entity: entity, types: types})
}

// Remove queues the removal of components.
func (c *Commands) Remove(entity EntityId, types ...ComponentType) {
	c.removes = append(c.removes, componentCommand{entity: entity, types: types})
}

// Defer queues a function call.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.creates) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the queued operations in the order deletes, removes, adds,
// creates, defers. Operations on entities deleted in the same flush, or
// unknown to the manager, are skipped. Anything queued while flushing, from
// a CreateWith init or a deferred func, stays queued for the next flush.
func (c *Commands) Flush(entities *EntityManager) {
	pending := *c
	c.creates, c.deletes, c.adds, c.removes, c.defers = nil, nil, nil, nil, nil

	deleted := make(map[EntityId]bool, len(pending.deletes))

	for _, id := range pending.deletes {
		entities.DeleteEntity(id)
		deleted[id] = true
	}

	for _, cmd := range pending.removes {
		if deleted[cmd.entity] {
			continue
		}
		if e, ok := entities.Entity(cmd.entity); ok {
			e.DeleteComponents(cmd.types...)
		}
	}

	for _, cmd := range pending.adds {
		if deleted[cmd.entity] {
			continue
		}
		if e, ok := entities.Entity(cmd.entity); ok {
			e.AddComponents(cmd.types...)
		}
	}

	for _, cmd := range pending.creates {
		e := entities.CreateEntity(cmd.types...)
		if cmd.init != nil {
			cmd.init(e)
		}
	}

	for _, fn := range pending.defers {
		fn()
	}

	pending.reset()
	c.reuse(&pending)
}

// reset empties the buffer, keeping its capacity.
func (c *Commands) reset() {
	clear(c.creates)
	clear(c.adds)
	clear(c.removes)
	clear(c.defers)
	c.creates = c.creates[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}

// reuse hands the drained slices of spent back to c where c queued nothing.
func (c *Commands) reuse(spent *Commands) {
	if c.creates == nil {
		c.creates = spent.creates
	}
	if c.deletes == nil {
		c.deletes = spent.deletes
	}
	if c.adds == nil {
		c.adds = spent.adds
	}
	if c.removes == nil {
		c.removes = spent.removes
	}
	if c.defers == nil {
		c.defers = spent.defers
	}
}
