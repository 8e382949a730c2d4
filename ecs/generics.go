package ecs

import "github.com/bilelsahraoui/RemyGame/ecs/component"

func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return w.addComponent(e, handle.Kind().ID(), value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.store(handle.Kind().ID(), false).Remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	_, ok := w.getComponent(e, handle.Kind().ID())
	return ok
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	value, ok := w.getComponent(e, handle.Kind().ID())
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// ForEach calls fn for every live entity holding handle's component.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, T)) {
	s := w.store(handle.Kind().ID(), false)
	for _, e := range append([]Entity(nil), s.Entities()...) {
		v, ok := Get(w, e, handle)
		if !ok {
			continue
		}
		fn(e, v)
	}
}
