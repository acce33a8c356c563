package ecs

// System is a unit of per-frame behavior. OnStart runs once when the system is
// registered, OnUpdate once per frame in registration order, and OnStop once
// when its SystemManager stops, in reverse registration order.
//
// Implementations embed BaseSystem, which holds the EntityManager the system
// queries and provides no-op defaults for the three hooks.
type System interface {
	OnStart()
	OnUpdate(dt float64)
	OnStop()

	bind(entities *EntityManager, commands *Commands)
}

// BaseSystem is embedded by every System.
type BaseSystem struct {
	entities *EntityManager
	commands *Commands
}

func (b *BaseSystem) bind(entities *EntityManager, commands *Commands) {
	if b.entities != nil {
		panic("ecs: system is already bound to an entity manager")
	}
	b.entities = entities
	b.commands = commands
}

// Entities returns the manager the system was registered against.
func (b *BaseSystem) Entities() *EntityManager {
	return b.entities
}

// Commands returns the buffer flushed after every update.
func (b *BaseSystem) Commands() *Commands {
	return b.commands
}

// Query is a shorthand for Entities().Query.
func (b *BaseSystem) Query(types ...ComponentType) []*Entity {
	return b.entities.Query(types...)
}

// QueryAll is a shorthand for Entities().QueryAll.
func (b *BaseSystem) QueryAll() []*Entity {
	return b.entities.QueryAll()
}

func (b *BaseSystem) OnStart() {}

func (b *BaseSystem) OnUpdate(dt float64) {}

func (b *BaseSystem) OnStop() {}
