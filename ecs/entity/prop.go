package entity

import (
	"fmt"
	"image/color"

	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
	"github.com/bilelsahraoui/RemyGame/physics"
)

// NewProp builds the visual entity paired with body. Its transform starts as
// a copy of the body's.
func NewProp(w *ecs.World, body *physics.Body, c color.Color) (ecs.Entity, error) {
	if body == nil {
		return 0, fmt.Errorf("prop: nil body")
	}
	def := body.Def()

	prop := ecs.CreateEntity(w)
	if err := ecs.Add(w, prop, component.PropTagComponent, component.PropTag{}); err != nil {
		return 0, fmt.Errorf("prop: add tag: %w", err)
	}
	if err := ecs.Add(w, prop, component.TransformComponent, component.Transform{Pose: body.WorldTransform(), Scale: 1}); err != nil {
		return 0, fmt.Errorf("prop: add transform: %w", err)
	}
	if err := ecs.Add(w, prop, component.PropBodyComponent, component.PropBody{Body: body}); err != nil {
		return 0, fmt.Errorf("prop: add body: %w", err)
	}
	if err := ecs.Add(w, prop, component.AppearanceComponent, component.Appearance{
		Color: c,
		Size:  def.Shape.Size,
		Round: def.Shape.Kind == physics.ShapeSphere,
	}); err != nil {
		return 0, fmt.Errorf("prop: add appearance: %w", err)
	}
	return prop, nil
}
