package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Appearance is what the debug renderer needs to draw an entity.
type Appearance struct {
	Color  color.Color
	Size   mgl64.Vec3
	Round  bool
	Facing bool
}

var AppearanceComponent = NewComponent[Appearance]()
