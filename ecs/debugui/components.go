package debugui

import (
	"time"

	"github.com/plus3/lazyengine/ecs"
)

// Selection is shared by the tool windows of one debug UI. A zero field means
// nothing is selected.
type Selection struct {
	Instance ecs.InstanceId
	Entity   ecs.EntityId
}

// resolve returns the selected instance, falling back to the first one. The
// entity selection is cleared when the instance changes.
func (s *Selection) resolve(registry *ecs.Registry) *ecs.Instance {
	if inst, ok := registry.Instance(s.Instance); ok {
		return inst
	}

	instances := registry.Instances()
	if len(instances) == 0 {
		s.Instance, s.Entity = 0, 0
		return nil
	}
	s.Instance = instances[0].Id
	s.Entity = 0
	return instances[0]
}

type EntityBrowserComponent struct {
	entities      []EntityInfo
	sortColumn    entityColumn
	sortAscending bool
	filterText    string
	pageSize      int
	currentPage   int
}

type ComponentInspectorComponent struct{}

type InstanceViewerComponent struct {
	instances     []InstanceInfo
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	frameHistory []float32
	frameIndex   int
	lastFrame    time.Time
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[ecs.TypeKey]bool
}
