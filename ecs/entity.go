package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

// EntityId is the manager-local identifier of an entity. Ids are assigned in
// increasing order and never reused by the same EntityManager.
type EntityId uint64

// Uuid distinguishes an entity from every other entity created through the
// same Registry, across all of its instances. The sequence is owned by the
// Registry, or by the manager itself for one built with NewEntityManager, so
// uuids from separate registries or standalone managers may collide.
type Uuid uint64

const defaultEntityName = "Unnamed Entity"

// Entity is an identity plus a set of components, at most one per type.
// Entities are created by an EntityManager, which owns them; an *Entity is a
// non-owning handle that stays valid until the entity is deleted.
type Entity struct {
	id         EntityId
	uuid       Uuid
	name       string
	components *intmap.Map[TypeKey, componentBox]
	order      []TypeKey
	manager    *EntityManager
}

func newEntity(id EntityId, uuid Uuid, manager *EntityManager) *Entity {
	return &Entity{
		id:         id,
		uuid:       uuid,
		name:       defaultEntityName,
		components: intmap.New[TypeKey, componentBox](8),
		manager:    manager,
	}
}

// Id returns the entity's manager-local id.
func (e *Entity) Id() EntityId {
	return e.id
}

// Uuid returns the entity's registry-wide unique id.
func (e *Entity) Uuid() Uuid {
	return e.uuid
}

func (e *Entity) Name() string {
	return e.name
}

func (e *Entity) SetName(name string) {
	e.name = name
}

// Alive reports whether the entity is still registered with its manager.
func (e *Entity) Alive() bool {
	return e.manager != nil
}

// Len returns the number of components attached to the entity.
func (e *Entity) Len() int {
	return e.components.Len()
}

// AddComponents attaches a zero-valued component for each type. A component
// that is already present is reset to its zero value.
func (e *Entity) AddComponents(types ...ComponentType) {
	for _, ct := range types {
		if b, ok := e.components.Get(ct.key); ok {
			b.release()
			continue
		}
		e.insert(ct.key, ct.newBox())
	}
}

// HasComponents reports whether the entity carries every listed type.
// It is true for an empty list.
func (e *Entity) HasComponents(types ...ComponentType) bool {
	for _, ct := range types {
		if !e.components.Has(ct.key) {
			return false
		}
	}
	return true
}

// DeleteComponents removes the listed component types. Types the entity does
// not carry are ignored.
func (e *Entity) DeleteComponents(types ...ComponentType) {
	for _, ct := range types {
		e.remove(ct.key)
	}
}

// ComponentTypes returns the entity's component types in the order they were
// attached.
func (e *Entity) ComponentTypes() []ComponentType {
	types := make([]ComponentType, 0, len(e.order))
	for _, key := range e.order {
		if ct, ok := LookupType(key); ok {
			types = append(types, ct)
		}
	}
	return types
}

// Component returns a pointer to the component stored under key, as an any.
// Tools that only know the key at runtime use this; typed code uses Get.
func (e *Entity) Component(key TypeKey) (any, bool) {
	b, ok := e.components.Get(key)
	if !ok {
		return nil, false
	}
	return b.ptr(), true
}

// Duplicate creates a new entity in the same manager with a fresh id, the
// same name and a copy of every component. Components implementing Cloner are
// deep-copied. The copy shares no storage with e.
func (e *Entity) Duplicate() *Entity {
	if e.manager == nil {
		panic(eris.Wrapf(ErrEntityNotFound, "duplicate of deleted entity %d", e.id))
	}

	dup := e.manager.newEntity()
	dup.name = e.name
	for _, key := range e.order {
		b, _ := e.components.Get(key)
		dup.insert(key, b.clone())
	}
	e.manager.adopt(dup)
	return dup
}

func (e *Entity) hasKeys(keys []TypeKey) bool {
	for _, key := range keys {
		if !e.components.Has(key) {
			return false
		}
	}
	return true
}

func (e *Entity) insert(key TypeKey, b componentBox) {
	e.components.Put(key, b)
	e.order = append(e.order, key)
}

func (e *Entity) remove(key TypeKey) bool {
	b, ok := e.components.Get(key)
	if !ok {
		return false
	}
	b.release()
	e.components.Del(key)
	if idx := slices.Index(e.order, key); idx >= 0 {
		e.order = slices.Delete(e.order, idx, idx+1)
	}
	return true
}

// destroy releases every component and detaches the entity from its manager.
func (e *Entity) destroy() {
	for _, key := range e.order {
		if b, ok := e.components.Get(key); ok {
			b.release()
		}
	}
	e.components.Clear()
	e.order = nil
	e.manager = nil
}

// Add attaches value as the entity's component of type T, replacing an
// existing one, and returns a pointer to the stored value.
func Add[T any](e *Entity, value T) *T {
	ct := Type[T]()
	if b, ok := e.components.Get(ct.key); ok {
		b.release()
		stored := b.(*box[T])
		stored.value = value
		return &stored.value
	}

	b := &box[T]{value: value}
	e.insert(ct.key, b)
	return &b.value
}

// Has reports whether the entity carries a component of type T.
func Has[T any](e *Entity) bool {
	return e.components.Has(KeyOf[T]())
}

// Get returns a pointer to the entity's component of type T. Writes through
// the pointer are visible to later calls. It fails with ErrComponentNotFound
// if the component was never added.
func Get[T any](e *Entity) (*T, error) {
	ct := Type[T]()
	b, ok := e.components.Get(ct.key)
	if !ok {
		return nil, eris.Wrapf(ErrComponentNotFound, "entity %d (%s): %s", e.id, e.name, ct)
	}
	return &b.(*box[T]).value, nil
}

// MustGet is like Get but panics when the component is missing.
func MustGet[T any](e *Entity) *T {
	v, err := Get[T](e)
	if err != nil {
		panic(err)
	}
	return v
}

// Set overwrites the entity's component of type T. The component must have
// been added first; otherwise Set fails with ErrComponentNotFound.
func Set[T any](e *Entity, value T) error {
	v, err := Get[T](e)
	if err != nil {
		return err
	}
	*v = value
	return nil
}
