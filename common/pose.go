package common

import "github.com/go-gl/mathgl/mgl64"

var (
	localForward = mgl64.Vec3{0, 0, 1}
	localRight   = mgl64.Vec3{1, 0, 0}
)

// Pose is a position plus unit orientation.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewPose returns a pose at the origin with identity rotation.
func NewPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// Forward returns the pose's local +Z axis in world space.
func (p Pose) Forward() mgl64.Vec3 {
	return p.Rotation.Rotate(localForward).Normalize()
}

// Right returns the pose's local +X axis in world space.
func (p Pose) Right() mgl64.Vec3 {
	return p.Rotation.Rotate(localRight).Normalize()
}

// TransformPoint maps a point from the pose's local space into world space.
func (p Pose) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return p.Rotation.Rotate(local).Add(p.Position)
}
