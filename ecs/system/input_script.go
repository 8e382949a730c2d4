package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/bilelsahraoui/RemyGame/character"
	"github.com/bilelsahraoui/RemyGame/ecs"
	"github.com/bilelsahraoui/RemyGame/ecs/component"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// inputDispatchScript is appended to every input script. The script must
// define input(engine) returning a map of held keys.
const inputDispatchScript = `
__keys = input(__engine)
`

// ScriptedInputSystem replays input from a tengo script instead of the
// keyboard. The script sees engine.time, engine.frame, engine.state and
// engine.log.
type ScriptedInputSystem struct {
	name     string
	compiled *tengo.Compiled
	time     float64
	frame    int
	err      error
}

func NewScriptedInputSystem(name string, src []byte) (*ScriptedInputSystem, error) {
	s := &ScriptedInputSystem{name: name}
	if err := s.Reload(src); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload recompiles the script. The clock keeps running.
func (s *ScriptedInputSystem) Reload(src []byte) error {
	script := tengo.NewScript([]byte(string(src) + "\n" + inputDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__keys", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("input script %s: compile: %w", s.name, err)
	}
	if !compiled.IsDefined("input") {
		return fmt.Errorf("input script %s: no input(engine) function", s.name)
	}
	s.compiled = compiled
	s.err = nil
	return nil
}

// Name returns the script name the system was created with.
func (s *ScriptedInputSystem) Name() string { return s.name }

// Err returns the last script runtime error.
func (s *ScriptedInputSystem) Err() error { return s.err }

func (s *ScriptedInputSystem) Update(w *ecs.World, dt float64) {
	if s == nil || w == nil || s.compiled == nil {
		return
	}

	in, err := s.run(currentState(w))
	s.frame++
	s.time += dt
	if err != nil {
		if s.err == nil {
			log.Printf("ScriptedInputSystem: %s frame %d: %v", s.name, s.frame, err)
		}
		s.err = err
		in = character.Input{}
	}
	writeInput(w, in, s.frame)
}

func (s *ScriptedInputSystem) run(state character.StateName) (character.Input, error) {
	engine := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"time":  &tengo.Float{Value: s.time},
		"frame": &tengo.Int{Value: int64(s.frame)},
		"state": &tengo.String{Value: state.String()},
		"log": &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
			parts := make([]string, 0, len(args))
			for _, a := range args {
				parts = append(parts, objectAsString(a))
			}
			log.Printf("script %s: %s", s.name, strings.Join(parts, " "))
			return tengo.UndefinedValue, nil
		}},
	}}

	if err := s.compiled.Set("__engine", engine); err != nil {
		return character.Input{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return character.Input{}, err
	}

	keys := s.compiled.Get("__keys").Map()
	return character.Input{
		Forward:  truthy(keys["forward"]),
		Backward: truthy(keys["backward"]),
		Left:     truthy(keys["left"]),
		Right:    truthy(keys["right"]),
		Run:      truthy(keys["run"]),
		Jump:     truthy(keys["jump"]),
	}, nil
}

func currentState(w *ecs.World) character.StateName {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return character.StateNone
	}
	c, ok := ecs.Get(w, player, component.CharacterComponent)
	if !ok {
		return character.StateNone
	}
	return c.FSM.Current()
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return false
	}
}

func objectAsString(o tengo.Object) string {
	if s, ok := o.(*tengo.String); ok {
		return s.Value
	}
	return o.String()
}
