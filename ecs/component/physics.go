package component

import "github.com/bilelsahraoui/RemyGame/physics"

// PropBody links a prop entity to the rigid body that owns its transform.
type PropBody struct {
	Body *physics.Body
}

var PropBodyComponent = NewComponent[PropBody]()
