package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/lazyengine/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder appends "<name>:<hook>" to a shared log.
type recorder struct {
	ecs.BaseSystem
	name string
	log  *[]string
}

func (r *recorder) OnStart()            { *r.log = append(*r.log, r.name+":start") }
func (r *recorder) OnUpdate(dt float64) { *r.log = append(*r.log, r.name+":update") }
func (r *recorder) OnStop()             { *r.log = append(*r.log, r.name+":stop") }

type dtSystem struct {
	ecs.BaseSystem
	seen []float64
}

func (s *dtSystem) OnUpdate(dt float64) {
	s.seen = append(s.seen, dt)
}

// watcher logs the names of entities it sees carrying Name.
type watcher struct {
	ecs.BaseSystem
	seen *[]string
}

func (w *watcher) OnUpdate(dt float64) {
	for _, e := range w.Query(nameType) {
		*w.seen = append(*w.seen, e.Name())
	}
}

// reaper deletes a fixed entity.
type reaper struct {
	ecs.BaseSystem
	target ecs.EntityId
}

func (r *reaper) OnUpdate(dt float64) {
	r.Entities().DeleteEntity(r.target)
}

// viewSystem gets its View field wired at registration.
type viewSystem struct {
	ecs.BaseSystem
	Movers ecs.View[struct {
		*Position
		*Velocity
	}]
}

func (s *viewSystem) OnUpdate(dt float64) {
	for item := range s.Movers.Values() {
		item.Position.X += item.Velocity.DX * float32(dt)
		item.Position.Y += item.Velocity.DY * float32(dt)
	}
}

func TestMoveSystemScenario(t *testing.T) {
	reg := ecs.NewRegistry()
	inst, ok := reg.Instance(reg.CreateInstance())
	require.True(t, ok)

	e := inst.Entities.CreateEntity(ecs.Type[PositionComponent](), ecs.Type[VelocityComponent]())
	assert.Equal(t, PositionComponent{}, *ecs.MustGet[PositionComponent](e))
	require.NoError(t, ecs.Set(e, VelocityComponent{Value: mgl32.Vec3{1, 0, 0}}))

	move := ecs.InstantiateSystem[MoveSystem](inst.Systems)
	assert.Equal(t, 1, move.Started)
	assert.Same(t, inst.Entities, move.Entities())

	before := ecs.MustGet[PositionComponent](e).Value
	reg.Update(1.0)

	after := ecs.MustGet[PositionComponent](e).Value
	assert.True(t, after.ApproxEqual(before.Add(mgl32.Vec3{1, 0, 0})), "got %v", after)

	reg.Update(0.5)
	assert.True(t, ecs.MustGet[PositionComponent](e).Value.ApproxEqual(mgl32.Vec3{1.5, 0, 0}))
}

func TestStopFromInsideUpdate(t *testing.T) {
	var log []string
	em := ecs.NewEntityManager()
	sm := ecs.NewSystemManager(em)

	sm.Register(&recorder{name: "a", log: &log})
	sm.Register(&queueSystem{fn: func(c *ecs.Commands) {
		c.Create(positionType)
		sm.Stop()
	}})
	sm.Register(&recorder{name: "c", log: &log})

	require.NotPanics(t, func() { sm.Update(1) })
	assert.Equal(t, []string{
		"a:start", "c:start",
		"a:update",
		"c:stop", "a:stop",
	}, log)
	assert.Equal(t, 0, em.Len())
	assert.Equal(t, 0, sm.Commands().Len())
	assert.Empty(t, sm.Systems())

	require.NotPanics(t, func() { sm.Update(1) })
}

func TestSystemLifecycleOrder(t *testing.T) {
	var log []string
	sm := ecs.NewSystemManager(ecs.NewEntityManager())

	sm.Register(&recorder{name: "a", log: &log})
	sm.Register(&recorder{name: "b", log: &log})
	sm.Register(&recorder{name: "c", log: &log})
	sm.Update(0.016)
	sm.Stop()
	sm.Stop()

	assert.Equal(t, []string{
		"a:start", "b:start", "c:start",
		"a:update", "b:update", "c:update",
		"c:stop", "b:stop", "a:stop",
	}, log)
	assert.Equal(t, 0, sm.Len())

	sm.Update(0.016)
	assert.Len(t, log, 9)
}

func TestDeltaTimeForwardedUnchanged(t *testing.T) {
	sm := ecs.NewSystemManager(ecs.NewEntityManager())
	s := ecs.InstantiateSystem[dtSystem](sm)

	for _, dt := range []float64{0.016, -1, 0, 1e9} {
		sm.Update(dt)
	}
	assert.Equal(t, []float64{0.016, -1, 0, 1e9}, s.seen)
}

func TestSameTickDeletionVisibility(t *testing.T) {
	reg := ecs.NewRegistry()
	inst, _ := reg.Instance(reg.CreateInstance())

	x := inst.Entities.CreateEntity(nameType)
	x.SetName("X")

	var seen []string
	inst.Systems.Register(&watcher{seen: &seen})
	inst.Systems.Register(&reaper{target: x.Id()})

	reg.Update(1)
	assert.Equal(t, []string{"X"}, seen)
	assert.False(t, x.Alive())

	reg.Update(1)
	assert.Equal(t, []string{"X"}, seen)
	assert.Empty(t, inst.Entities.Query(nameType))
	assert.Empty(t, inst.Entities.QueryAll())
}

func TestLaterSystemSeesEarlierMutation(t *testing.T) {
	em := ecs.NewEntityManager()
	sm := ecs.NewSystemManager(em)

	var seen []string
	x := em.CreateEntity(nameType)
	x.SetName("X")

	sm.Register(&reaper{target: x.Id()})
	sm.Register(&watcher{seen: &seen})
	sm.Update(1)

	assert.Empty(t, seen)
}

func TestRegisterTwicePanics(t *testing.T) {
	s := &dtSystem{}
	ecs.NewSystemManager(ecs.NewEntityManager()).Register(s)

	assert.Panics(t, func() {
		ecs.NewSystemManager(ecs.NewEntityManager()).Register(s)
	})
}

func TestViewFieldsInitialized(t *testing.T) {
	em := ecs.NewEntityManager()
	sm := ecs.NewSystemManager(em)

	e := em.CreateEntity()
	ecs.Add(e, Position{X: 0, Y: 0})
	ecs.Add(e, Velocity{DX: 1, DY: 2})
	em.CreateEntity(positionType)

	s := ecs.InstantiateSystem[viewSystem](sm)
	assert.Equal(t, 1, s.Movers.Len())

	sm.Update(2)
	assert.Equal(t, Position{X: 2, Y: 4}, *ecs.MustGet[Position](e))
}

func TestSystemsAccessor(t *testing.T) {
	sm := ecs.NewSystemManager(ecs.NewEntityManager())
	a := ecs.InstantiateSystem[dtSystem](sm)
	b := ecs.InstantiateSystem[MoveSystem](sm)

	systems := sm.Systems()
	require.Len(t, systems, 2)
	assert.Same(t, a, systems[0])
	assert.Same(t, b, systems[1])
}

func TestSystemStats(t *testing.T) {
	sm := ecs.NewSystemManager(ecs.NewEntityManager())
	ecs.InstantiateSystem[dtSystem](sm)
	ecs.InstantiateSystem[MoveSystem](sm)

	for i := 0; i < 3; i++ {
		sm.Update(0.1)
	}

	stats := sm.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "dtSystem", stats.Systems[0].Name)
	assert.Equal(t, "MoveSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.MaxDuration)
		assert.GreaterOrEqual(t, s.TotalDuration, s.MaxDuration)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	sm := ecs.NewSystemManager(ecs.NewEntityManager())
	s := ecs.InstantiateSystem[dtSystem](sm)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sm.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.NotEmpty(t, s.seen)
}
