package component

import "github.com/bilelsahraoui/RemyGame/character"

// Character drives a player-controlled figure. FSM is nil until the
// animation set has loaded.
type Character struct {
	Name       string
	FSM        *character.FSM
	Controller *character.Controller
}

// Ready reports whether the state machine has entered its first state.
func (c Character) Ready() bool {
	return c.FSM.Ready()
}

var CharacterComponent = NewComponent[Character]()
