package character

import "fmt"

// StateName identifies one of the character's locomotion states.
type StateName uint8

const (
	StateNone StateName = iota
	StateIdle
	StateWalk
	StateRun
	StateJump
)

var stateNames = map[StateName]string{
	StateNone: "none",
	StateIdle: "idle",
	StateWalk: "walk",
	StateRun:  "run",
	StateJump: "jump",
}

// States lists the registered states in declaration order.
var States = []StateName{StateIdle, StateWalk, StateRun, StateJump}

func (s StateName) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Valid reports whether s is a registered state.
func (s StateName) Valid() bool {
	return s >= StateIdle && s <= StateJump
}

// Clip returns the animation name the state plays.
func (s StateName) Clip() string {
	return s.String()
}

// ParseStateName maps a config-facing name to a state.
func ParseStateName(name string) (StateName, error) {
	for _, s := range States {
		if stateNames[s] == name {
			return s, nil
		}
	}
	return StateNone, fmt.Errorf("character: unknown state %q", name)
}

// MustParseStateName is ParseStateName for names that are known at build time.
func MustParseStateName(name string) StateName {
	s, err := ParseStateName(name)
	if err != nil {
		panic(err)
	}
	return s
}
