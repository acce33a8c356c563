package ecs

import (
	"log/slog"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

// sequence hands out increasing ids starting at 1.
type sequence struct {
	last uint64
}

func (s *sequence) next() uint64 {
	s.last++
	return s.last
}

// EntityManager owns the entities of one ECS instance.
//
// Queries scan every live entity and test component membership; there is no
// per-type index. Results are returned in creation order as a fresh slice, so
// callers may create or delete entities while walking a result.
type EntityManager struct {
	entities *intmap.Map[EntityId, *Entity]
	order    []*Entity
	ids      sequence
	uuids    *sequence
	logger   *slog.Logger
}

// NewEntityManager creates an empty manager with its own uuid sequence.
func NewEntityManager(opts ...Option) *EntityManager {
	return newEntityManager(&sequence{}, newOptions(opts))
}

func newEntityManager(uuids *sequence, o options) *EntityManager {
	return &EntityManager{
		entities: intmap.New[EntityId, *Entity](256),
		uuids:    uuids,
		logger:   o.logger,
	}
}

// CreateEntity creates an entity carrying a zero-valued component of each
// listed type.
func (m *EntityManager) CreateEntity(types ...ComponentType) *Entity {
	e := m.newEntity()
	e.AddComponents(types...)
	m.adopt(e)
	return e
}

func (m *EntityManager) newEntity() *Entity {
	return newEntity(EntityId(m.ids.next()), Uuid(m.uuids.next()), m)
}

func (m *EntityManager) adopt(e *Entity) {
	m.entities.Put(e.id, e)
	m.order = append(m.order, e)
}

// Entity returns the live entity with the given id.
func (m *EntityManager) Entity(id EntityId) (*Entity, bool) {
	return m.entities.Get(id)
}

// DeleteEntity removes the entity and releases its components. It reports
// whether an entity was removed; unknown ids are ignored.
func (m *EntityManager) DeleteEntity(id EntityId) bool {
	e, ok := m.entities.Get(id)
	if !ok {
		m.logger.Debug("delete of unknown entity", "err", eris.Wrapf(ErrEntityNotFound, "id %d", id))
		return false
	}

	m.entities.Del(id)
	if idx := slices.Index(m.order, e); idx >= 0 {
		m.order = slices.Delete(m.order, idx, idx+1)
	}
	e.destroy()
	return true
}

// Query returns every entity carrying all the listed component types.
func (m *EntityManager) Query(types ...ComponentType) []*Entity {
	keys := make([]TypeKey, len(types))
	for i, ct := range types {
		keys[i] = ct.key
	}
	return m.QueryKeys(keys...)
}

// QueryKeys is Query for callers holding type keys rather than descriptors.
func (m *EntityManager) QueryKeys(keys ...TypeKey) []*Entity {
	result := make([]*Entity, 0, len(m.order))
	for _, e := range m.order {
		if e.hasKeys(keys) {
			result = append(result, e)
		}
	}
	return result
}

// QueryAll returns every live entity.
func (m *EntityManager) QueryAll() []*Entity {
	return slices.Clone(m.order)
}

// Len returns the number of live entities.
func (m *EntityManager) Len() int {
	return len(m.order)
}

// Clear deletes every entity.
func (m *EntityManager) Clear() {
	for _, e := range m.order {
		e.destroy()
	}
	m.entities.Clear()
	m.order = nil
}
