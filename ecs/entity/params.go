package entity

import (
	"github.com/bilelsahraoui/RemyGame/camera"
	"github.com/bilelsahraoui/RemyGame/character"
	"github.com/bilelsahraoui/RemyGame/physics"
	"github.com/bilelsahraoui/RemyGame/prefabs"
	"github.com/go-gl/mathgl/mgl64"
)

func vec3(v prefabs.Vec3Spec) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// LocomotionParams converts a character spec's tuning. Unset fields keep
// their defaults.
func LocomotionParams(spec *prefabs.CharacterSpec) character.Params {
	p := character.DefaultParams()
	if spec == nil {
		return p
	}
	l := spec.Locomotion
	if l.Acceleration != (prefabs.Vec3Spec{}) {
		p.Acceleration = vec3(l.Acceleration)
	}
	if l.Deceleration != (prefabs.Vec3Spec{}) {
		p.Deceleration = vec3(l.Deceleration)
	}
	if l.TurnSpeed > 0 {
		p.TurnSpeed = l.TurnSpeed
	}
	if l.RunMultiplier > 0 {
		p.RunMultiplier = l.RunMultiplier
	}
	return p
}

// ApplyCameraSpec copies a camera spec onto rig. Only the rig shape changes;
// the smoothed position is kept.
func ApplyCameraSpec(rig *camera.ThirdPerson, spec *prefabs.CameraSpec) {
	if rig == nil || spec == nil {
		return
	}
	rig.Offset = vec3(spec.Offset)
	rig.LookAt = vec3(spec.LookAt)
	if spec.Smoothing > 0 && spec.Smoothing < 1 {
		rig.Smoothing = spec.Smoothing
	}
}

func material(m prefabs.MaterialSpec) physics.Material {
	return physics.Material{
		Restitution:     m.Restitution,
		Friction:        m.Friction,
		RollingFriction: m.RollingFriction,
	}
}

// WorldConfig converts a props spec into physics world settings.
func WorldConfig(spec *prefabs.PropsSpec) physics.WorldConfig {
	cfg := physics.DefaultWorldConfig()
	if spec == nil {
		return cfg
	}
	if spec.Gravity != (prefabs.Vec3Spec{}) {
		cfg.Gravity = vec3(spec.Gravity)
	}
	if spec.Iterations > 0 {
		cfg.Iterations = spec.Iterations
	}
	cfg.Floor = spec.Floor
	cfg.FloorY = spec.FloorY
	cfg.FloorMat = material(spec.FloorMat)
	return cfg
}

// SpawnerConfig converts a props spec's spawn section.
func SpawnerConfig(spec *prefabs.PropsSpec, seed uint64) physics.SpawnerConfig {
	cfg := physics.DefaultSpawnerConfig()
	cfg.Seed = seed
	if spec == nil {
		return cfg
	}
	s := spec.Spawn
	cfg.Interval = s.Interval
	cfg.MaxCount = s.MaxCount
	cfg.MinSize = s.MinSize
	cfg.MaxSize = s.MaxSize
	cfg.AreaMin = vec3(s.AreaMin)
	cfg.AreaMax = vec3(s.AreaMax)
	if s.Density > 0 {
		cfg.Density = s.Density
	}
	cfg.Material = material(s.Material)
	if s.Shape == "sphere" {
		cfg.Shape = physics.ShapeSphere
	} else {
		cfg.Shape = physics.ShapeBox
	}
	return cfg
}
