package entity

import (
	"fmt"

	"github.com/bilelsahraoui/RemyGame/camera"
	"github.com/bilelsahraoui/RemyGame/common"
	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
	"github.com/bilelsahraoui/RemyGame/prefabs"
)

// NewCamera builds the follow camera that trails the player.
func NewCamera(w *ecs.World, spec *prefabs.CameraSpec) (ecs.Entity, error) {
	rig := camera.NewThirdPerson()
	ApplyCameraSpec(rig, spec)

	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraTagComponent, component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, cam, component.TransformComponent, component.Transform{Pose: common.NewPose(), Scale: 1}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, cam, component.CameraComponent, component.Camera{
		TargetName: "player",
		Rig:        rig,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return cam, nil
}
