package ecs

// Commands buffers structural changes requested by systems so that storage is
// not modified while systems are iterating it. The scheduler flushes the
// buffer after every system of a stage has run.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an entity spawn with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion. Deleting an entity that is already gone
// is a no-op at flush time.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Defer queues a function to run after spawns and deletes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.defers)
}

// Flush applies deletes, then spawns, then deferred functions, and resets the
// buffer. Commands queued by deferred functions are applied in a further
// round before Flush returns. It returns the ids of spawned entities in queue
// order.
func (c *Commands) Flush(storage *Storage) []EntityId {
	var spawned []EntityId
	for c.Pending() > 0 {
		deletes, spawns, defers := c.deletes, c.spawns, c.defers
		c.deletes, c.spawns, c.defers = nil, nil, nil

		for _, id := range deletes {
			storage.Delete(id)
		}
		for _, components := range spawns {
			spawned = append(spawned, storage.Spawn(components...))
		}
		for _, fn := range defers {
			fn()
		}

		// reuse the drained buffers when nothing new was queued into them
		if c.deletes == nil {
			c.deletes = deletes[:0]
		}
		if c.spawns == nil {
			clear(spawns)
			c.spawns = spawns[:0]
		}
		if c.defers == nil {
			clear(defers)
			c.defers = defers[:0]
		}
	}
	return spawned
}
