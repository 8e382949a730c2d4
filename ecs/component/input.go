package component

import "github.com/bilelsahraoui/RemyGame/character"

// Input stores the intent sampled for an entity this frame.
type Input struct {
	character.Input
	Frame int
}

var InputComponent = NewComponent[Input]()
