package debugui

import "github.com/plus3/lazyengine/ecs"

// SpawnDebugUI creates the tool windows as entities of host and registers an
// ImguiSystem there to render them. The windows inspect every instance of
// registry, host included.
func SpawnDebugUI(registry *ecs.Registry, host *ecs.Instance) *Selection {
	sel := &Selection{}
	em := host.Entities

	spawnWindow(em, "Entity Browser", NewEntityBrowserComponent(100), func(c *EntityBrowserComponent) {
		c.Render(registry, sel)
	})
	spawnWindow(em, "Component Inspector", NewComponentInspectorComponent(), func(c *ComponentInspectorComponent) {
		c.Render(registry, sel)
	})
	spawnWindow(em, "Instance Viewer", NewInstanceViewerComponent(), func(c *InstanceViewerComponent) {
		c.Render(registry, sel)
	})
	spawnWindow(em, "Performance Stats", NewPerformanceStatsComponent(120), func(c *PerformanceStatsComponent) {
		c.Render(registry, sel)
	})
	spawnWindow(em, "Query Debugger", NewQueryDebuggerComponent(), func(c *QueryDebuggerComponent) {
		c.Render(registry, sel)
	})

	ecs.InstantiateSystem[ImguiSystem](host.Systems)
	return sel
}

func spawnWindow[T any](em *ecs.EntityManager, name string, window T, render func(*T)) *ecs.Entity {
	e := em.CreateEntity()
	e.SetName(name)
	state := ecs.Add(e, window)
	ecs.Add(e, ImguiItem{Render: func() { render(state) }})
	return e
}
