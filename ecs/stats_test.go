package ecs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsPosition struct{ X, Y float32 }
type statsHealth struct{ Current int }

type sleepSystem struct {
	BaseSystem
	delay time.Duration
}

func (s *sleepSystem) OnUpdate(dt float64) {
	time.Sleep(s.delay)
}

func TestRegistryStats(t *testing.T) {
	reg := NewRegistry()

	stats := reg.CollectStats()
	assert.Equal(t, 0, stats.InstanceCount)
	assert.Equal(t, 0, stats.TotalEntityCount)
	assert.Empty(t, stats.Instances)

	first := reg.CreateInstance()
	second := reg.CreateInstance()

	a, _ := reg.Instance(first)
	a.Entities.CreateEntity(Type[statsPosition](), Type[statsHealth]())
	a.Entities.CreateEntity(Type[statsPosition]())
	a.Systems.Register(&sleepSystem{})

	b, _ := reg.Instance(second)
	b.Entities.CreateEntity(Type[statsHealth]())

	stats = reg.CollectStats()
	assert.Equal(t, 2, stats.InstanceCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.TotalSystemCount)
	require.Len(t, stats.Instances, 2)

	inst := stats.Instances[0]
	assert.Equal(t, first, inst.Id)
	assert.Equal(t, a.Tag, inst.Tag)
	assert.Equal(t, 2, inst.EntityCount)
	assert.Equal(t, 1, inst.SystemCount)
	assert.Equal(t, []ComponentStats{
		{Type: "ecs.statsHealth", EntityCount: 1},
		{Type: "ecs.statsPosition", EntityCount: 2},
	}, inst.Components)

	assert.Equal(t, []ComponentStats{
		{Type: "ecs.statsHealth", EntityCount: 1},
	}, stats.Instances[1].Components)
}

func TestSystemManagerStats(t *testing.T) {
	sm := NewSystemManager(NewEntityManager())

	fast := &sleepSystem{}
	slow := &sleepSystem{delay: 2 * time.Millisecond}
	sm.Register(fast)
	sm.Register(slow)

	stats := sm.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)
	assert.Equal(t, time.Duration(0), stats.Systems[0].AvgDuration)

	for i := 0; i < 5; i++ {
		sm.Update(0.016)
	}

	stats = sm.Stats()
	assert.Equal(t, int64(10), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)

	s := stats.Systems[1]
	assert.Equal(t, "sleepSystem", s.Name)
	assert.Equal(t, int64(5), s.ExecutionCount)
	assert.GreaterOrEqual(t, s.MinDuration, 2*time.Millisecond)
	assert.GreaterOrEqual(t, s.MaxDuration, s.MinDuration)
	assert.Equal(t, s.TotalDuration/5, s.AvgDuration)
	assert.Greater(t, s.AvgDuration, stats.Systems[0].AvgDuration)

	sm.Stop()
	assert.Equal(t, 0, sm.Stats().SystemCount)
	assert.Empty(t, sm.Stats().Systems)
}
