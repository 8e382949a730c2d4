package system

import (
	"image/color"
	"log"

	"github.com/bilelsahraoui/RemyGame/common"
	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
	"github.com/bilelsahraoui/RemyGame/ecs/entity"
	"github.com/bilelsahraoui/RemyGame/physics"
)

// PhysicsSystem steps the prop world once per frame and copies every body's
// transform onto its visual entity. Transforms are never written back.
type PhysicsSystem struct {
	stepper *physics.Stepper
	color   color.Color
	bodies  map[*physics.Body]ecs.Entity
	world   *ecs.World
}

func NewPhysicsSystem(stepper *physics.Stepper, propColor color.Color) *PhysicsSystem {
	ps := &PhysicsSystem{
		stepper: stepper,
		color:   propColor,
		bodies:  make(map[*physics.Body]ecs.Entity),
	}
	stepper.OnSync(ps.sync)
	return ps
}

// Stepper returns the underlying stepper.
func (ps *PhysicsSystem) Stepper() *physics.Stepper { return ps.stepper }

// Props returns how many prop entities exist.
func (ps *PhysicsSystem) Props() int { return len(ps.bodies) }

func (ps *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if ps == nil || ps.stepper == nil {
		return
	}
	ps.world = w

	spawned, err := ps.stepper.Step(dt)
	if err != nil {
		log.Printf("PhysicsSystem: step: %v", err)
	}
	for _, body := range spawned {
		prop, err := entity.NewProp(w, body, ps.color)
		if err != nil {
			log.Printf("PhysicsSystem: create prop for body %d: %v", body.ID(), err)
			continue
		}
		ps.bodies[body] = prop
		w.Events().Push(ecs.Event{Type: ecs.EventPropSpawned, Entity: prop, Data: body.ID()})
	}
}

func (ps *PhysicsSystem) sync(body *physics.Body, pose common.Pose) {
	prop, ok := ps.bodies[body]
	if !ok || ps.world == nil {
		return
	}
	t, ok := ecs.Get(ps.world, prop, component.TransformComponent)
	if !ok {
		return
	}
	t.Pose = pose
	if err := ecs.Add(ps.world, prop, component.TransformComponent, t); err != nil {
		panic("physics system: update transform: " + err.Error())
	}
}
