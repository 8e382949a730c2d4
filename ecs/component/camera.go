package component

import "github.com/bilelsahraoui/RemyGame/camera"

type Camera struct {
	TargetName string
	Rig        *camera.ThirdPerson
	Snapped    bool
}

var CameraComponent = NewComponent[Camera]()
