package system

import (
	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
)

// CharacterSystem runs each character's state machine on this frame's input.
type CharacterSystem struct{}

func NewCharacterSystem() *CharacterSystem {
	return &CharacterSystem{}
}

func (s *CharacterSystem) Update(w *ecs.World, dt float64) {
	for _, e := range w.Query(component.CharacterComponent.Kind(), component.InputComponent.Kind()) {
		c, _ := ecs.Get(w, e, component.CharacterComponent)
		in, _ := ecs.Get(w, e, component.InputComponent)
		c.FSM.Update(dt, in.Input)
	}
}

// LocomotionSystem integrates each ready character's pose. It must run after
// CharacterSystem so it sees the post-transition state.
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

func (s *LocomotionSystem) Update(w *ecs.World, dt float64) {
	for _, e := range w.Query(
		component.CharacterComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
	) {
		c, _ := ecs.Get(w, e, component.CharacterComponent)
		if !c.Ready() || c.Controller == nil {
			continue
		}
		in, _ := ecs.Get(w, e, component.InputComponent)
		c.Controller.Update(dt, in.Input, c.FSM.Current())

		t, _ := ecs.Get(w, e, component.TransformComponent)
		t.Pose = c.Controller.Pose()
		if err := ecs.Add(w, e, component.TransformComponent, t); err != nil {
			panic("locomotion system: update transform: " + err.Error())
		}
	}
}
