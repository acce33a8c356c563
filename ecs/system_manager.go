package ecs

import (
	"context"
	"log/slog"
	"reflect"
	"time"
)

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// SystemManager owns the systems of one ECS instance and runs them in
// registration order.
type SystemManager struct {
	entities    *EntityManager
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands
	logger      *slog.Logger
}

// NewSystemManager creates a manager whose systems query entities.
func NewSystemManager(entities *EntityManager, opts ...Option) *SystemManager {
	return newSystemManager(entities, newOptions(opts))
}

func newSystemManager(entities *EntityManager, o options) *SystemManager {
	return &SystemManager{
		entities: entities,
		systems:  make([]System, 0),
		commands: newCommands(),
		logger:   o.logger,
	}
}

// InstantiateSystem creates a zero-valued T, registers it and returns it.
//
//	move := ecs.InstantiateSystem[MoveSystem](sm)
func InstantiateSystem[T any, PT interface {
	*T
	System
}](sm *SystemManager) PT {
	system := PT(new(T))
	sm.Register(system)
	return system
}

// Register binds the system to the manager's EntityManager, initializes its
// View fields, appends it to the update order and calls OnStart.
func (s *SystemManager) Register(system System) {
	system.bind(s.entities, s.commands)
	s.initializeViews(system)
	s.systems = append(s.systems, system)

	name := systemName(system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
	s.logger.Debug("system registered", "system", name, "position", len(s.systems)-1)

	system.OnStart()
}

type viewInitializer interface {
	Init(entities *EntityManager)
}

func (s *SystemManager) initializeViews(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if view, ok := field.Addr().Interface().(viewInitializer); ok {
			view.Init(s.entities)
		}
	}
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Update calls OnUpdate(dt) on every system in registration order, then
// flushes the command buffer. dt is passed through unchanged. If a system
// stops the manager, the update ends there and nothing is flushed.
func (s *SystemManager) Update(dt float64) {
	systems := s.systems
	for i, system := range systems {
		if !s.holds(i, system) {
			return
		}

		stats := s.systemStats[i]
		start := time.Now()
		system.OnUpdate(dt)
		duration := time.Since(start)

		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)

		if !s.holds(i, system) {
			return
		}
	}

	s.commands.Flush(s.entities)
}

// holds reports whether system is still registered at index i.
func (s *SystemManager) holds(i int, system System) bool {
	return i < len(s.systems) && s.systems[i] == system
}

// Stop calls OnStop on every system in reverse registration order, drops
// them and discards pending commands. Calling Stop again does nothing.
func (s *SystemManager) Stop() {
	for i := len(s.systems) - 1; i >= 0; i-- {
		s.systems[i].OnStop()
		s.logger.Debug("system stopped", "system", s.systemStats[i].name)
	}
	s.systems = nil
	s.systemStats = nil
	s.commands.reset()
}

// Run calls Update at the given interval until the context is cancelled.
func (s *SystemManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Update(dt)
		}
	}
}

// Systems returns the registered systems in update order.
func (s *SystemManager) Systems() []System {
	out := make([]System, len(s.systems))
	copy(out, s.systems)
	return out
}

// Len returns the number of registered systems.
func (s *SystemManager) Len() int {
	return len(s.systems)
}

// Entities returns the manager systems are bound to.
func (s *SystemManager) Entities() *EntityManager {
	return s.entities
}

// Commands returns the command buffer shared by the systems.
func (s *SystemManager) Commands() *Commands {
	return s.commands
}
