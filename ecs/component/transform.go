package component

import "github.com/bilelsahraoui/RemyGame/common"

// Transform is the observable pose of an entity. For props it is a copy of
// the physics body and is never written back.
type Transform struct {
	Pose  common.Pose
	Scale float64
}

var TransformComponent = NewComponent[Transform]()
