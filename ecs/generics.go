package ecs

import "github.com/glitchzeros/zonefall/ecs/component"

// Add attaches a copy of value to the entity under the handle's kind. The
// stored value is a *T, so later Get calls mutate it in place.
func Add[T any](w *World, e Entity, handle component.Handle[T], value T) error {
	return w.Attach(e, handle.ID(), &value)
}

// Get returns a pointer into the live component state, or false if the
// entity is gone or the component is absent.
func Get[T any](w *World, e Entity, handle component.Handle[T]) (*T, bool) {
	v, ok := w.Component(e, handle.ID())
	if !ok {
		return nil, false
	}
	ptr, ok := v.(*T)
	return ptr, ok
}

// Has reports whether the entity carries the handle's component kind.
func Has[T any](w *World, e Entity, handle component.Handle[T]) bool {
	return w.HasComponent(e, handle.ID())
}

// Remove detaches the handle's component kind from the entity.
func Remove[T any](w *World, e Entity, handle component.Handle[T]) bool {
	return w.Detach(e, handle.ID())
}

// First returns the first active entity carrying the handle's kind.
func First[T any](w *World, handle component.Handle[T]) (Entity, bool) {
	found := false
	var out Entity
	w.EachEntity(func(e Entity) {
		if !found && w.HasComponent(e, handle.ID()) {
			out = e
			found = true
		}
	})
	return out, found
}

// ForEach visits every active entity carrying the handle's kind.
func ForEach[T any](w *World, handle component.Handle[T], fn func(e Entity, v *T)) {
	w.EachEntity(func(e Entity) {
		if v, ok := Get(w, e, handle); ok {
			fn(e, v)
		}
	})
}
