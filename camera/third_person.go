// Package camera implements a third-person follow camera with frame-rate
// independent smoothing. Unlike pure smoothing, the first frame snaps to the
// ideal position instead of easing in from the origin.
package camera

import (
	"math"

	"github.com/bilelsahraoui/RemyGame/common"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultSmoothing is the fraction of the remaining distance left after one
// second of following.
const DefaultSmoothing = 0.001

// ThirdPerson trails a target pose. Only the smoothed position and look-at
// persist between updates.
type ThirdPerson struct {
	Offset    mgl64.Vec3 // camera position in the target's local space
	LookAt    mgl64.Vec3 // aim point in the target's local space
	Smoothing float64    // k in t = 1 - k^dt, 0 < k < 1

	position mgl64.Vec3
	lookAt   mgl64.Vec3
}

// NewThirdPerson returns a camera with the default rig.
func NewThirdPerson() *ThirdPerson {
	return &ThirdPerson{
		Offset:    mgl64.Vec3{-15, 30, -30},
		LookAt:    mgl64.Vec3{0, 10, 50},
		Smoothing: DefaultSmoothing,
	}
}

// IdealOffset is where the camera wants to be for target.
func (c *ThirdPerson) IdealOffset(target common.Pose) mgl64.Vec3 {
	return target.TransformPoint(c.Offset)
}

// IdealLookAt is where the camera wants to aim for target.
func (c *ThirdPerson) IdealLookAt(target common.Pose) mgl64.Vec3 {
	return target.TransformPoint(c.LookAt)
}

// Update moves the camera toward its ideals for target.
func (c *ThirdPerson) Update(dt float64, target common.Pose) {
	t := SmoothingFactor(c.Smoothing, dt)
	c.position = common.LerpVec3(c.position, c.IdealOffset(target), t)
	c.lookAt = common.LerpVec3(c.lookAt, c.IdealLookAt(target), t)
}

// Snap places the camera on its ideals without smoothing.
func (c *ThirdPerson) Snap(target common.Pose) {
	c.position = c.IdealOffset(target)
	c.lookAt = c.IdealLookAt(target)
}

func (c *ThirdPerson) Position() mgl64.Vec3 { return c.position }

func (c *ThirdPerson) LookAtPoint() mgl64.Vec3 { return c.lookAt }

// SmoothingFactor returns 1 - k^dt clamped to [0, 1]. Applying it n times
// with dt/n covers the same distance as once with dt.
func SmoothingFactor(k, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if k <= 0 {
		return 1
	}
	if k >= 1 {
		return 0
	}
	return common.Clamp(1-math.Pow(k, dt), 0, 1)
}
