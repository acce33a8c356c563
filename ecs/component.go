package ecs

// Cloner is implemented by components holding reference data (slices, maps,
// pointers) that must be deep-copied when their entity is duplicated.
type Cloner[T any] interface {
	Clone() T
}

// Releaser is implemented by components that hold resources. Release is
// called when the component is removed, reset, or its entity is deleted.
type Releaser interface {
	Release()
}

// componentBox is the type-erased owner of one component value.
type componentBox interface {
	// ptr returns a *T aliasing the stored value.
	ptr() any
	clone() componentBox
	// release notifies a Releaser and zeroes the value.
	release()
}

type box[T any] struct {
	value T
}

func newBox[T any]() componentBox {
	return &box[T]{}
}

func (b *box[T]) ptr() any {
	return &b.value
}

func (b *box[T]) clone() componentBox {
	if c, ok := any(&b.value).(Cloner[T]); ok {
		return &box[T]{value: c.Clone()}
	}
	return &box[T]{value: b.value}
}

func (b *box[T]) release() {
	if r, ok := any(&b.value).(Releaser); ok {
		r.Release()
	}
	var zero T
	b.value = zero
}
