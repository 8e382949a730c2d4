package system

import (
	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
	"github.com/go-gl/mathgl/mgl64"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update smooths the camera toward the target's final pose for the frame.
// The first update snaps.
func (cs *CameraSystem) Update(w *ecs.World, dt float64) {
	if !ecs.IsAlive(w, cs.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			cs.camEntity = camEntity
		}
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok || cam.Rig == nil {
		return
	}

	if !ecs.IsAlive(w, cs.targetEntity) {
		if target := findEntityByNameOrTag(w, cam.TargetName); target.Valid() {
			cs.targetEntity = target
		}
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent)
	if !ok {
		return
	}

	if !cam.Snapped {
		cam.Rig.Snap(target.Pose)
		cam.Snapped = true
		if err := ecs.Add(w, cs.camEntity, component.CameraComponent, cam); err != nil {
			panic("camera system: update camera: " + err.Error())
		}
	} else {
		cam.Rig.Update(dt, target.Pose)
	}

	if camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent); ok {
		camTransform.Pose.Position = cam.Rig.Position()
		camTransform.Pose.Rotation = lookRotation(cam.Rig.Position(), cam.Rig.LookAtPoint())
		if err := ecs.Add(w, cs.camEntity, component.TransformComponent, camTransform); err != nil {
			panic("camera system: update transform: " + err.Error())
		}
	}
}

func lookRotation(from, to mgl64.Vec3) mgl64.Quat {
	dir := to.Sub(from)
	if dir.Len() < 1e-9 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, dir.Normalize())
}

func findEntityByNameOrTag(w *ecs.World, name string) ecs.Entity {
	switch name {
	case "", "player":
		if e, ok := w.First(component.PlayerTagComponent.Kind()); ok {
			return e
		}
	}
	for _, e := range w.Query(component.CharacterComponent.Kind()) {
		if c, ok := ecs.Get(w, e, component.CharacterComponent); ok && c.Name == name {
			return e
		}
	}
	return 0
}
