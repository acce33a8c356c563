package ecs_test

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/lazyengine/ecs"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Temperature float64

type Inventory struct {
	Items []string
}

func (i *Inventory) Clone() Inventory {
	return Inventory{Items: slices.Clone(i.Items)}
}

type Stats struct {
	Attributes map[string]int
}

// GPUHandle counts releases through a shared counter.
type GPUHandle struct {
	Id       uint32
	Released *int
}

func (h *GPUHandle) Release() {
	if h.Released != nil {
		*h.Released++
	}
}

// Vector components, shaped like the ones the renderer feeds in.
type PositionComponent struct {
	Value mgl32.Vec3
}

type VelocityComponent struct {
	Value mgl32.Vec3
}

var (
	positionType    = ecs.Type[Position]()
	velocityType    = ecs.Type[Velocity]()
	nameType        = ecs.Type[Name]()
	healthType      = ecs.Type[Health]()
	scoreType       = ecs.Type[Score]()
	temperatureType = ecs.Type[Temperature]()
)

// MoveSystem integrates VelocityComponent into PositionComponent.
type MoveSystem struct {
	ecs.BaseSystem
	Started int
	Stopped int
}

func (s *MoveSystem) OnStart() {
	s.Started++
}

func (s *MoveSystem) OnUpdate(dt float64) {
	for _, e := range s.Query(ecs.Type[PositionComponent](), ecs.Type[VelocityComponent]()) {
		pos := ecs.MustGet[PositionComponent](e)
		vel := ecs.MustGet[VelocityComponent](e)
		pos.Value = pos.Value.Add(vel.Value.Mul(float32(dt)))
	}
}

func (s *MoveSystem) OnStop() {
	s.Stopped++
}
