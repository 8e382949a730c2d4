package component

import (
	"github.com/bilelsahraoui/RemyGame/animation"
	"github.com/bilelsahraoui/RemyGame/assets"
)

// Animation holds an entity's clip loader and, once loading completes, the
// animation set it produced.
type Animation struct {
	Loader *assets.Loader
	Set    *animation.Set
}

var AnimationComponent = NewComponent[Animation]()
