package ecs

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

// InstanceId identifies an instance within its Registry.
type InstanceId uint32

// Instance is an independent ECS world. Entities and systems of one instance
// are never visible to another.
type Instance struct {
	Id InstanceId
	// Tag is a random id that tells instances apart in logs across runs,
	// where numeric ids repeat.
	Tag      uuid.UUID
	Entities *EntityManager
	Systems  *SystemManager
}

// Registry creates, updates and destroys instances. Entity uuids are unique
// across all instances of one Registry.
type Registry struct {
	instances *intmap.Map[InstanceId, *Instance]
	order     []InstanceId
	ids       sequence
	uuids     sequence
	opts      options
	logger    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	o := newOptions(opts)
	return &Registry{
		instances: intmap.New[InstanceId, *Instance](8),
		opts:      o,
		logger:    o.logger,
	}
}

// CreateInstance creates an instance with an empty EntityManager and
// SystemManager and returns its id.
func (r *Registry) CreateInstance() InstanceId {
	id := InstanceId(r.ids.next())
	tag := uuid.New()

	o := r.opts
	o.logger = r.logger.With("instance", id, "tag", tag.String())

	entities := newEntityManager(&r.uuids, o)
	inst := &Instance{
		Id:       id,
		Tag:      tag,
		Entities: entities,
		Systems:  newSystemManager(entities, o),
	}

	r.instances.Put(id, inst)
	r.order = append(r.order, id)

	r.logger.Info("instance created", "instance", id, "tag", tag.String())
	return id
}

// Instance returns the instance with the given id.
func (r *Registry) Instance(id InstanceId) (*Instance, bool) {
	return r.instances.Get(id)
}

// Lookup is like Instance but reports a missing instance as an error
// wrapping ErrInstanceNotFound.
func (r *Registry) Lookup(id InstanceId) (*Instance, error) {
	inst, ok := r.instances.Get(id)
	if !ok {
		return nil, eris.Wrapf(ErrInstanceNotFound, "id %d", id)
	}
	return inst, nil
}

// RemoveInstance stops the instance's systems, deletes its entities and drops
// it. It reports whether the instance existed.
func (r *Registry) RemoveInstance(id InstanceId) bool {
	inst, ok := r.instances.Get(id)
	if !ok {
		r.logger.Debug("remove of unknown instance", "err", eris.Wrapf(ErrInstanceNotFound, "id %d", id))
		return false
	}

	r.instances.Del(id)
	if idx := slices.Index(r.order, id); idx >= 0 {
		r.order = slices.Delete(r.order, idx, idx+1)
	}

	inst.Systems.Stop()
	inst.Entities.Clear()

	r.logger.Info("instance removed", "instance", id, "tag", inst.Tag.String())
	return true
}

// Update runs one frame of every instance, in creation order.
func (r *Registry) Update(dt float64) {
	for _, id := range slices.Clone(r.order) {
		if inst, ok := r.instances.Get(id); ok {
			inst.Systems.Update(dt)
		}
	}
}

// Instances returns the live instances in creation order.
func (r *Registry) Instances() []*Instance {
	out := make([]*Instance, 0, len(r.order))
	for _, id := range r.order {
		if inst, ok := r.instances.Get(id); ok {
			out = append(out, inst)
		}
	}
	return out
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	return len(r.order)
}

// Close removes every instance, most recent first.
func (r *Registry) Close() {
	for i := len(r.order) - 1; i >= 0; i-- {
		r.RemoveInstance(r.order[i])
	}
}
