package physics

import "github.com/bilelsahraoui/RemyGame/common"

// DefaultSubsteps is the number of integration steps per frame.
const DefaultSubsteps = 10

// SyncFunc receives a body's authoritative pose after each step.
type SyncFunc func(b *Body, pose common.Pose)

// Stepper advances the prop simulation once per frame: spawn, one
// StepSimulation call, then copy every dynamic body's transform out.
type Stepper struct {
	world    *World
	spawner  *Spawner
	substeps int
	sync     SyncFunc
}

// NewStepper creates a stepper. spawner may be nil.
func NewStepper(world *World, spawner *Spawner, substeps int) *Stepper {
	if substeps < 1 {
		substeps = DefaultSubsteps
	}
	return &Stepper{world: world, spawner: spawner, substeps: substeps}
}

// OnSync sets the function that receives body poses after each step.
func (s *Stepper) OnSync(fn SyncFunc) { s.sync = fn }

func (s *Stepper) World() *World { return s.world }

func (s *Stepper) Spawner() *Spawner { return s.spawner }

func (s *Stepper) Substeps() int { return s.substeps }

// Step advances the world by dt and returns the props spawned this frame.
func (s *Stepper) Step(dt float64) ([]*Body, error) {
	if s == nil || s.world == nil || dt <= 0 {
		return nil, nil
	}
	spawned, err := s.spawner.Update(dt)
	if err != nil {
		return spawned, err
	}

	s.world.StepSimulation(dt, s.substeps)

	if s.sync != nil {
		for _, b := range s.world.bodies {
			if !b.Dynamic() {
				continue
			}
			s.sync(b, b.WorldTransform())
		}
	}
	return spawned, nil
}
