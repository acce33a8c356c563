package ecs

import "github.com/rotisserie/eris"

var (
	// ErrComponentNotFound is returned by Get and Set when the entity does not
	// carry the requested component type.
	ErrComponentNotFound = eris.New("ecs: component not found")
	// ErrEntityNotFound signals a lookup of an unknown or deleted entity.
	ErrEntityNotFound = eris.New("ecs: entity not found")
	// ErrInstanceNotFound signals a lookup of an unknown instance id.
	ErrInstanceNotFound = eris.New("ecs: instance not found")
)
