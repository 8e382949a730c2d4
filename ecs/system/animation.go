package system

import (
	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
)

// AnimationSystem advances every loaded mixer. Clip-finished events fire
// from here, so a finished jump returns to Idle during this system.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.AnimationComponent, func(_ ecs.Entity, anim component.Animation) {
		if anim.Set == nil {
			return
		}
		anim.Set.Mixer().Update(dt)
	})
}
