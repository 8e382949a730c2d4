package system

import (
	"github.com/bilelsahraoui/RemyGame/character"
	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
	"github.com/hajimehoshi/ebiten/v2"
)

const stickDeadzone = 0.3

// KeyboardInputSystem samples the keyboard and first gamepad once per frame
// and writes the result to every Input component.
type KeyboardInputSystem struct {
	frame int
}

func NewKeyboardInputSystem() *KeyboardInputSystem {
	return &KeyboardInputSystem{}
}

func (i *KeyboardInputSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	i.frame++

	in := character.Input{
		Forward:  ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Backward: ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:     ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:    ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Run:      ebiten.IsKeyPressed(ebiten.KeyShift),
		Jump:     ebiten.IsKeyPressed(ebiten.KeySpace),
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		in.Forward = in.Forward || y < -stickDeadzone
		in.Backward = in.Backward || y > stickDeadzone
		in.Left = in.Left || x < -stickDeadzone
		in.Right = in.Right || x > stickDeadzone
		in.Run = in.Run || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	}

	writeInput(w, in, i.frame)
}

func writeInput(w *ecs.World, in character.Input, frame int) {
	for _, e := range w.Query(component.InputComponent.Kind()) {
		if err := ecs.Add(w, e, component.InputComponent, component.Input{Input: in, Frame: frame}); err != nil {
			panic("input system: update input: " + err.Error())
		}
	}
}
