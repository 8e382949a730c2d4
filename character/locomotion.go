package character

import (
	"math"

	"github.com/bilelsahraoui/RemyGame/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Params tunes the kinematic locomotion model. Velocity is expressed in the
// character's local basis: x lateral, y vertical, z forward.
type Params struct {
	Acceleration  mgl64.Vec3
	Deceleration  mgl64.Vec3
	TurnSpeed     float64 // radians per second, independent of gait
	RunMultiplier float64
}

// DefaultParams returns the tuning the character ships with.
func DefaultParams() Params {
	return Params{
		Acceleration:  mgl64.Vec3{1, 0.25, 90},
		Deceleration:  mgl64.Vec3{-0.0005, -0.0001, -5.0},
		TurnSpeed:     math.Pi,
		RunMultiplier: 2,
	}
}

// Controller integrates velocity and pose from input and the current
// animation state.
type Controller struct {
	params   Params
	velocity mgl64.Vec3
	pose     common.Pose
}

// NewController creates a controller at rest at pose.
func NewController(params Params, pose common.Pose) *Controller {
	return &Controller{params: params, pose: pose}
}

func (c *Controller) Pose() common.Pose { return c.pose }

func (c *Controller) Velocity() mgl64.Vec3 { return c.velocity }

func (c *Controller) Params() Params { return c.params }

// SetParams swaps the tuning without touching velocity or pose.
func (c *Controller) SetParams(p Params) { c.params = p }

func (c *Controller) SetPose(p common.Pose) { c.pose = p }

// Update advances one tick. It must run after the state machine so state is
// the post-transition current state.
func (c *Controller) Update(dt float64, in Input, state StateName) {
	if dt <= 0 {
		return
	}

	c.velocity = c.velocity.Add(decelerate(c.velocity, c.params.Deceleration, dt))

	scale := 1.0
	if in.Run {
		scale = c.params.RunMultiplier
	}
	if state == StateJump {
		scale = 0
	}
	acc := c.params.Acceleration.Mul(scale)

	if in.Forward {
		c.velocity[2] += acc.Z() * dt
	}
	if in.Backward {
		c.velocity[2] -= acc.Z() * dt
	}

	turn := c.params.TurnSpeed * dt
	rot := c.pose.Rotation
	if in.Left {
		rot = rot.Mul(common.YawQuat(turn))
	}
	if in.Right {
		rot = rot.Mul(common.YawQuat(-turn))
	}
	c.pose.Rotation = rot.Normalize()

	forward := c.pose.Forward().Mul(c.velocity.Z() * dt)
	sideways := c.pose.Right().Mul(c.velocity.X() * dt)
	c.pose.Position = c.pose.Position.Add(forward).Add(sideways)
}

// decelerate returns the velocity change for one tick. The forward term is
// clamped so it can at most bring v.z to zero.
func decelerate(v, coeff mgl64.Vec3, dt float64) mgl64.Vec3 {
	d := mgl64.Vec3{v.X() * coeff.X(), v.Y() * coeff.Y(), v.Z() * coeff.Z()}.Mul(dt)
	d[2] = common.Sign(d.Z()) * math.Min(math.Abs(d.Z()), math.Abs(v.Z()))
	return d
}
