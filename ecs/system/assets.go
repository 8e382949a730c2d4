package system

import (
	"fmt"
	"log"

	"github.com/bilelsahraoui/RemyGame/character"
	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
)

// AssetSystem polls each character's clip loader without blocking. When a
// loader completes it builds the state machine and enters Idle, exactly once.
type AssetSystem struct {
	err error
}

func NewAssetSystem() *AssetSystem {
	return &AssetSystem{}
}

// Err returns the first loader failure.
func (a *AssetSystem) Err() error { return a.err }

// Ready reports whether every character has entered its first state.
func (a *AssetSystem) Ready(w *ecs.World) bool {
	ents := w.Query(component.CharacterComponent.Kind())
	if len(ents) == 0 {
		return false
	}
	for _, e := range ents {
		c, _ := ecs.Get(w, e, component.CharacterComponent)
		if !c.Ready() {
			return false
		}
	}
	return true
}

func (a *AssetSystem) Update(w *ecs.World, _ float64) {
	if a.err != nil {
		return
	}
	for _, e := range w.Query(component.CharacterComponent.Kind(), component.AnimationComponent.Kind()) {
		c, _ := ecs.Get(w, e, component.CharacterComponent)
		if c.FSM != nil {
			continue
		}
		anim, _ := ecs.Get(w, e, component.AnimationComponent)
		if anim.Loader == nil {
			continue
		}
		set, done, err := anim.Loader.Poll()
		if !done {
			continue
		}
		if err != nil {
			a.err = fmt.Errorf("assets: character %s: %w", c.Name, err)
			log.Printf("AssetSystem: %v", a.err)
			return
		}

		anim.Set = set
		if err := ecs.Add(w, e, component.AnimationComponent, anim); err != nil {
			panic("asset system: update animation: " + err.Error())
		}

		entity := e
		c.FSM = character.NewFSM(set)
		c.FSM.OnTransition(func(from, to character.StateName) {
			w.Events().Push(ecs.Event{Type: ecs.EventStateChanged, Entity: entity, Data: StateChange{From: from, To: to}})
		})
		if err := ecs.Add(w, e, component.CharacterComponent, c); err != nil {
			panic("asset system: update character: " + err.Error())
		}

		w.Events().Push(ecs.Event{Type: ecs.EventAssetsReady, Entity: e, Data: set.Names()})
		c.FSM.SetState(character.StateIdle)
	}
}

// StateChange is the payload of a state_changed event.
type StateChange struct {
	From, To character.StateName
}
