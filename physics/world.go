package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/bilelsahraoui/RemyGame/common"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

var ErrInvalidBody = errors.New("physics: invalid body")

// ShapeKind selects the collision primitive of a body.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	default:
		return "box"
	}
}

// Shape describes a body's collision primitive. Box sizes are full extents;
// a sphere uses Size.X as its diameter.
type Shape struct {
	Kind ShapeKind
	Size mgl64.Vec3
}

// Material holds the contact properties assigned to a body.
type Material struct {
	Restitution     float64
	Friction        float64
	RollingFriction float64
}

// BodyDef is everything needed to create a rigid body. A zero mass makes a
// static body.
type BodyDef struct {
	Mass     float64
	Shape    Shape
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Material Material
}

// WorldConfig configures a physics world.
type WorldConfig struct {
	Gravity    mgl64.Vec3
	Iterations int
	Floor      bool
	FloorY     float64
	FloorHalf  float64
	FloorMat   Material
}

// DefaultWorldConfig returns earth-like gravity with no floor.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Gravity:    mgl64.Vec3{0, -9.8, 0},
		Iterations: 10,
		FloorHalf:  500,
		FloorMat:   Material{Restitution: 0.3, Friction: 1},
	}
}

// World owns the cp space. Bodies move in the vertical XY plane and keep the
// Z they were created with.
type World struct {
	space  *cp.Space
	floor  *cp.Shape
	bodies []*Body
	nextID int
}

// NewWorld creates a world from cfg.
func NewWorld(cfg WorldConfig) *World {
	space := cp.NewSpace()
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	space.SetGravity(cp.Vector{X: cfg.Gravity.X(), Y: cfg.Gravity.Y()})

	w := &World{space: space}
	if cfg.Floor {
		half := cfg.FloorHalf
		if half <= 0 {
			half = 500
		}
		floor := cp.NewSegment(space.StaticBody, cp.Vector{X: -half, Y: cfg.FloorY}, cp.Vector{X: half, Y: cfg.FloorY}, 0.5)
		floor.SetElasticity(cfg.FloorMat.Restitution)
		floor.SetFriction(cfg.FloorMat.Friction)
		w.floor = space.AddShape(floor)
	}
	return w
}

// Space returns the underlying cp space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// HasFloor reports whether the static floor segment exists.
func (w *World) HasFloor() bool { return w.floor != nil }

// Bodies returns the bodies added to the world in insertion order.
func (w *World) Bodies() []*Body {
	return append([]*Body(nil), w.bodies...)
}

// CreateBody builds a body from def without adding it to the world.
func (w *World) CreateBody(def BodyDef) (*Body, error) {
	if def.Mass < 0 || math.IsNaN(def.Mass) {
		return nil, fmt.Errorf("%w: mass %v", ErrInvalidBody, def.Mass)
	}
	width, height := def.Shape.Size.X(), def.Shape.Size.Y()
	if def.Shape.Kind == ShapeSphere {
		height = width
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %v size %v", ErrInvalidBody, def.Shape.Kind, def.Shape.Size)
	}
	if def.Rotation == (mgl64.Quat{}) {
		def.Rotation = mgl64.QuatIdent()
	}

	var body *cp.Body
	if def.Mass == 0 {
		body = cp.NewStaticBody()
	} else {
		var moment float64
		if def.Shape.Kind == ShapeSphere {
			moment = cp.MomentForCircle(def.Mass, 0, width/2, cp.Vector{})
		} else {
			moment = cp.MomentForBox(def.Mass, width, height)
		}
		body = cp.NewBody(def.Mass, moment)
	}
	body.SetPosition(cp.Vector{X: def.Position.X(), Y: def.Position.Y()})
	body.SetAngle(common.RollAngle(def.Rotation))

	var shape *cp.Shape
	if def.Shape.Kind == ShapeSphere {
		shape = cp.NewCircle(body, width/2, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetElasticity(def.Material.Restitution)
	shape.SetFriction(def.Material.Friction)

	if rf := def.Material.RollingFriction; rf > 0 && def.Mass > 0 {
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(b, gravity, damping, dt)
			b.SetAngularVelocity(b.AngularVelocity() * math.Max(0, 1-rf*dt))
		})
	}

	w.nextID++
	return &Body{id: w.nextID, def: def, body: body, shape: shape, z: def.Position.Z()}, nil
}

// AddBody inserts b into the simulation. Adding a body twice is an error.
func (w *World) AddBody(b *Body) error {
	if b == nil {
		return fmt.Errorf("%w: nil body", ErrInvalidBody)
	}
	if b.added {
		return fmt.Errorf("%w: body %d already added", ErrInvalidBody, b.id)
	}
	w.space.AddBody(b.body)
	w.space.AddShape(b.shape)
	b.added = true
	w.bodies = append(w.bodies, b)
	return nil
}

// StepSimulation advances the world by dt split into substeps equal steps.
func (w *World) StepSimulation(dt float64, substeps int) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	if substeps < 1 {
		substeps = 1
	}
	h := dt / float64(substeps)
	for i := 0; i < substeps; i++ {
		w.space.Step(h)
	}
}

// Body is a rigid body whose transform is owned by the world.
type Body struct {
	id    int
	def   BodyDef
	body  *cp.Body
	shape *cp.Shape
	z     float64
	added bool
}

func (b *Body) ID() int { return b.id }

// Def returns the definition the body was created from.
func (b *Body) Def() BodyDef { return b.def }

// Dynamic reports whether the body is integrated by the world.
func (b *Body) Dynamic() bool { return b.def.Mass > 0 }

// WorldTransform returns the authoritative pose. The cp angle is a rotation
// about +Z.
func (b *Body) WorldTransform() common.Pose {
	p := b.body.Position()
	return common.Pose{
		Position: mgl64.Vec3{p.X, p.Y, b.z},
		Rotation: common.RollQuat(b.body.Angle()),
	}
}

// Velocity returns the linear velocity in world space.
func (b *Body) Velocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, 0}
}

// AngularVelocity returns the spin about +Z in radians per second.
func (b *Body) AngularVelocity() float64 {
	return b.body.AngularVelocity()
}

// SetAngularVelocity sets the spin about +Z.
func (b *Body) SetAngularVelocity(w float64) {
	b.body.SetAngularVelocity(w)
}
