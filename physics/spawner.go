package physics

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// SpawnerConfig controls the timed prop spawner.
type SpawnerConfig struct {
	Interval float64
	MaxCount int
	Shape    ShapeKind
	MinSize  float64
	MaxSize  float64
	AreaMin  mgl64.Vec3
	AreaMax  mgl64.Vec3
	Density  float64
	Material Material
	Seed     uint64
}

// DefaultSpawnerConfig drops a box every quarter second, up to fifty.
func DefaultSpawnerConfig() SpawnerConfig {
	return SpawnerConfig{
		Interval: 0.25,
		MaxCount: 50,
		MinSize:  1,
		MaxSize:  4,
		AreaMin:  mgl64.Vec3{-20, 40, -20},
		AreaMax:  mgl64.Vec3{20, 60, 20},
		Density:  1,
		Material: Material{Restitution: 0.3, Friction: 0.8, RollingFriction: 0.3},
		Seed:     1,
	}
}

// Spawner creates props at a fixed cadence until MaxCount is reached.
type Spawner struct {
	cfg     SpawnerConfig
	world   *World
	rng     *rand.Rand
	elapsed float64
	count   int
}

func NewSpawner(world *World, cfg SpawnerConfig) *Spawner {
	return &Spawner{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// Count returns how many props have been spawned.
func (s *Spawner) Count() int { return s.count }

// Done reports whether the spawner has reached its limit.
func (s *Spawner) Done() bool { return s.count >= s.cfg.MaxCount }

// Update advances the spawn timer and returns the props created this tick.
// A long tick can spawn several props.
func (s *Spawner) Update(dt float64) ([]*Body, error) {
	if s == nil || s.cfg.Interval <= 0 || s.Done() || dt <= 0 {
		return nil, nil
	}
	s.elapsed += dt

	var spawned []*Body
	for s.elapsed >= s.cfg.Interval && !s.Done() {
		s.elapsed -= s.cfg.Interval
		b, err := s.spawn()
		if err != nil {
			return spawned, err
		}
		spawned = append(spawned, b)
	}
	return spawned, nil
}

func (s *Spawner) spawn() (*Body, error) {
	size := mgl64.Vec3{s.between(s.cfg.MinSize, s.cfg.MaxSize), s.between(s.cfg.MinSize, s.cfg.MaxSize), 0}
	size[2] = size[0]
	if s.cfg.Shape == ShapeSphere {
		size[1] = size[0]
	}
	pos := mgl64.Vec3{
		s.between(s.cfg.AreaMin.X(), s.cfg.AreaMax.X()),
		s.between(s.cfg.AreaMin.Y(), s.cfg.AreaMax.Y()),
		s.between(s.cfg.AreaMin.Z(), s.cfg.AreaMax.Z()),
	}
	density := s.cfg.Density
	if density <= 0 {
		density = 1
	}

	b, err := s.world.CreateBody(BodyDef{
		Mass:     density * size.X() * size.Y() * size.Z(),
		Shape:    Shape{Kind: s.cfg.Shape, Size: size},
		Position: pos,
		Rotation: mgl64.QuatIdent(),
		Material: s.cfg.Material,
	})
	if err != nil {
		return nil, fmt.Errorf("physics: spawn prop %d: %w", s.count, err)
	}
	if err := s.world.AddBody(b); err != nil {
		return nil, fmt.Errorf("physics: spawn prop %d: %w", s.count, err)
	}
	s.count++
	return b, nil
}

func (s *Spawner) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
