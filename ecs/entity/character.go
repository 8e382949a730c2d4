package entity

import (
	"fmt"

	"github.com/bilelsahraoui/RemyGame/assets"
	"github.com/bilelsahraoui/RemyGame/character"
	"github.com/bilelsahraoui/RemyGame/common"
	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
	"github.com/bilelsahraoui/RemyGame/prefabs"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/colornames"
)

// NewCharacter builds the player entity from spec. Its state machine stays
// empty until loader completes.
func NewCharacter(w *ecs.World, spec *prefabs.CharacterSpec, loader *assets.Loader) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("character: nil spec")
	}

	pose := common.NewPose()
	pose.Position = vec3(spec.Position)
	pose.Rotation = common.YawQuat(spec.Heading)

	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = 4
	}

	player := ecs.CreateEntity(w)
	if err := ecs.Add(w, player, component.PlayerTagComponent, component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("character: add player tag: %w", err)
	}
	if err := ecs.Add(w, player, component.TransformComponent, component.Transform{Pose: pose, Scale: scale}); err != nil {
		return 0, fmt.Errorf("character: add transform: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent, component.Input{}); err != nil {
		return 0, fmt.Errorf("character: add input: %w", err)
	}
	if err := ecs.Add(w, player, component.CharacterComponent, component.Character{
		Name:       spec.Name,
		Controller: character.NewController(LocomotionParams(spec), pose),
	}); err != nil {
		return 0, fmt.Errorf("character: add character: %w", err)
	}
	if err := ecs.Add(w, player, component.AnimationComponent, component.Animation{Loader: loader}); err != nil {
		return 0, fmt.Errorf("character: add animation: %w", err)
	}
	if err := ecs.Add(w, player, component.AppearanceComponent, component.Appearance{
		Color:  spec.Color.Or(colornames.Orange),
		Size:   mgl64.Vec3{radius * 2, radius * 2, radius * 2},
		Round:  true,
		Facing: true,
	}); err != nil {
		return 0, fmt.Errorf("character: add appearance: %w", err)
	}

	return player, nil
}
