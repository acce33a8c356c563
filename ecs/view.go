package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View is a typed query over an EntityManager. T must be a struct whose fields
// are pointers to component types; each filled field aliases the entity's
// component storage. Embedded fields are always required, named fields can be
// marked optional with the `ecs:"optional"` struct tag:
//
//	ecs.NewView[struct {
//		*Position
//		*Velocity
//		Health *Health `ecs:"optional"`
//	}](em)
type View[T any] struct {
	entities    *EntityManager
	keys        []TypeKey
	optional    []bool
	fieldOffset []uintptr
	required    []TypeKey
}

// NewView creates a view of T over the given manager.
func NewView[T any](entities *EntityManager) *View[T] {
	v := &View[T]{}
	v.Init(entities)
	return v
}

// Init binds the view to a manager and parses T.
// SystemManager calls it for View fields of registered systems.
func (v *View[T]) Init(entities *EntityManager) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v.entities = entities
	v.keys = make([]TypeKey, 0, structType.NumField())
	v.optional = make([]bool, 0, structType.NumField())
	v.fieldOffset = make([]uintptr, 0, structType.NumField())
	v.required = v.required[:0]

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		key := typeOf(field.Type.Elem()).key
		v.keys = append(v.keys, key)
		v.fieldOffset = append(v.fieldOffset, field.Offset)

		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}
		v.optional = append(v.optional, isOptional)
		if !isOptional {
			v.required = append(v.required, key)
		}
	}
}

// Fill points the fields of ptr at the entity's components.
// Returns false if the entity is missing a required component; missing
// optional components are set to nil.
func (v *View[T]) Fill(e *Entity, ptr *T) bool {
	if e == nil || !e.Alive() || !e.hasKeys(v.required) {
		return false
	}

	structPtr := unsafe.Pointer(ptr)
	for i, key := range v.keys {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])

		b, ok := e.components.Get(key)
		if !ok {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		component := b.ptr()
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Get returns a filled view of the entity, or nil if it doesn't match.
func (v *View[T]) Get(e *Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Matches reports whether the entity carries every required component.
func (v *View[T]) Matches(e *Entity) bool {
	return e.hasKeys(v.required)
}

// Entities returns the matching entities in creation order.
func (v *View[T]) Entities() []*Entity {
	return v.entities.QueryKeys(v.required...)
}

// Len returns the number of matching entities.
func (v *View[T]) Len() int {
	n := 0
	for _, e := range v.entities.order {
		if e.hasKeys(v.required) {
			n++
		}
	}
	return n
}

// Iter yields every matching entity with its filled view. The set of entities
// is fixed when iteration starts; entities deleted during iteration are skipped.
func (v *View[T]) Iter() iter.Seq2[*Entity, T] {
	return func(yield func(*Entity, T) bool) {
		var result T
		for _, e := range v.Entities() {
			if !v.Fill(e, &result) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values is Iter without the entities.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// iface mirrors the runtime layout of an interface value; Fill uses it to read
// the component pointer out of an any without reflection.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
