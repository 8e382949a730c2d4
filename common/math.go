package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpVec3 moves a toward b by t (0..1).
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1. Zero stays zero.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// YawQuat returns a rotation of angle radians about +Y.
func YawQuat(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, mgl64.Vec3{0, 1, 0})
}

// RollQuat returns a rotation of angle radians about +Z.
func RollQuat(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1})
}

// RollAngle extracts the rotation about +Z from a quaternion that only rotates about Z.
func RollAngle(q mgl64.Quat) float64 {
	return 2 * math.Atan2(q.V.Z(), q.W)
}

// Heading returns the yaw of q measured from +Z toward +X.
func Heading(q mgl64.Quat) float64 {
	f := q.Rotate(mgl64.Vec3{0, 0, 1})
	return math.Atan2(f.X(), f.Z())
}
