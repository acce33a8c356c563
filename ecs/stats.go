package ecs

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SystemManagerStats provides statistics about system execution.
type SystemManagerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// Stats returns execution statistics for the registered systems.
func (s *SystemManager) Stats() *SystemManagerStats {
	stats := &SystemManagerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

// RegistryStats summarizes every instance of a Registry.
type RegistryStats struct {
	InstanceCount    int
	TotalEntityCount int
	TotalSystemCount int
	Instances        []InstanceStats
}

// InstanceStats summarizes one instance.
type InstanceStats struct {
	Id          InstanceId
	Tag         uuid.UUID
	EntityCount int
	SystemCount int
	Components  []ComponentStats
}

// ComponentStats counts the entities carrying one component type.
type ComponentStats struct {
	Type        string
	EntityCount int
}

// CollectStats walks every instance and counts entities, systems and
// component usage.
func (r *Registry) CollectStats() *RegistryStats {
	stats := &RegistryStats{
		InstanceCount: len(r.order),
		Instances:     make([]InstanceStats, 0, len(r.order)),
	}

	for _, inst := range r.Instances() {
		instStats := InstanceStats{
			Id:          inst.Id,
			Tag:         inst.Tag,
			EntityCount: inst.Entities.Len(),
			SystemCount: inst.Systems.Len(),
			Components:  collectComponentStats(inst.Entities),
		}
		stats.TotalEntityCount += instStats.EntityCount
		stats.TotalSystemCount += instStats.SystemCount
		stats.Instances = append(stats.Instances, instStats)
	}

	return stats
}

func collectComponentStats(entities *EntityManager) []ComponentStats {
	counts := make(map[TypeKey]int)
	for _, e := range entities.order {
		for _, key := range e.order {
			counts[key]++
		}
	}

	out := make([]ComponentStats, 0, len(counts))
	for key, n := range counts {
		ct, _ := LookupType(key)
		out = append(out, ComponentStats{Type: ct.String(), EntityCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Type < out[j].Type
	})
	return out
}
