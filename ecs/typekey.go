package ecs

import (
	"reflect"
	"sync"
)

// TypeKey identifies a component type for the lifetime of the process.
// Keys are handed out on first use of a type, starting at 1.
type TypeKey uint32

// ComponentType describes a component type at runtime. A list of
// ComponentType values names a set of component types:
//
//	em.CreateEntity(ecs.Type[Position](), ecs.Type[Velocity]())
type ComponentType struct {
	key   TypeKey
	rtype reflect.Type
	alloc func() componentBox
}

// Key returns the type's key.
func (c ComponentType) Key() TypeKey {
	return c.key
}

// Type returns the reflected Go type.
func (c ComponentType) Type() reflect.Type {
	return c.rtype
}

func (c ComponentType) String() string {
	if c.rtype == nil {
		return "<invalid>"
	}
	return c.rtype.String()
}

func (c ComponentType) newBox() componentBox {
	if c.alloc == nil {
		panic("ecs: component type " + c.String() + " has no constructor, obtain it with ecs.Type[T]()")
	}
	return c.alloc()
}

type typeRegistry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]TypeKey
	byKey  []ComponentType
}

var typeTable = &typeRegistry{
	byType: make(map[reflect.Type]TypeKey),
}

// intern returns the descriptor for rtype, assigning a key on first sight.
// alloc may be nil when the caller only needs the key.
func (r *typeRegistry) intern(rtype reflect.Type, alloc func() componentBox) ComponentType {
	r.mu.RLock()
	key, ok := r.byType[rtype]
	if ok {
		ct := r.byKey[key-1]
		r.mu.RUnlock()
		if ct.alloc != nil || alloc == nil {
			return ct
		}
	} else {
		r.mu.RUnlock()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if key, ok := r.byType[rtype]; ok {
		ct := &r.byKey[key-1]
		if ct.alloc == nil {
			ct.alloc = alloc
		}
		return *ct
	}

	ct := ComponentType{
		key:   TypeKey(len(r.byKey) + 1),
		rtype: rtype,
		alloc: alloc,
	}
	r.byType[rtype] = ct.key
	r.byKey = append(r.byKey, ct)
	return ct
}

func (r *typeRegistry) lookup(key TypeKey) (ComponentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if key == 0 || int(key) > len(r.byKey) {
		return ComponentType{}, false
	}
	return r.byKey[key-1], true
}

// Type returns the descriptor of component type T.
func Type[T any]() ComponentType {
	return typeTable.intern(reflect.TypeFor[T](), newBox[T])
}

// KeyOf returns the key of component type T. Two calls with the same T
// return equal keys, calls with different types return different keys.
func KeyOf[T any]() TypeKey {
	return Type[T]().key
}

// LookupType returns the descriptor a key was assigned to.
func LookupType(key TypeKey) (ComponentType, bool) {
	return typeTable.lookup(key)
}

// typeOf returns the descriptor for a reflected type. The result can be used
// for matching but only has a constructor if ecs.Type was called for it.
func typeOf(rtype reflect.Type) ComponentType {
	return typeTable.intern(rtype, nil)
}
