package character

import (
	"fmt"

	"github.com/bilelsahraoui/RemyGame/animation"
)

// Crossfade durations are fixed per transition type.
const (
	LocomotionFade = 0.5
	JumpFade       = 0.2
)

// Animations is the part of an animation set the state machine drives.
type Animations interface {
	Action(name string) *animation.Action
	Mixer() *animation.Mixer
}

// TransitionFunc observes a completed transition. from is StateNone for the
// first one.
type TransitionFunc func(from, to StateName)

// state is one entry of the closed state set. Only Jump carries per-entry
// data: the finished subscription it holds while current.
type state struct {
	name     StateName
	finished *animation.Subscription
}

func (s *state) release() bool {
	if s.finished == nil {
		return false
	}
	removed := s.finished.Cancel()
	s.finished = nil
	return removed
}

// FSM selects and blends the character's animation state.
type FSM struct {
	anims   Animations
	current *state
	hooks   []TransitionFunc
}

// NewFSM creates a machine with no current state. It does nothing until the
// first SetState, which the driver issues once every clip has loaded.
func NewFSM(anims Animations) *FSM {
	if anims == nil {
		panic("character: state machine needs an animation set")
	}
	return &FSM{anims: anims}
}

// Current returns the current state, or StateNone before the first transition.
func (f *FSM) Current() StateName {
	if f == nil || f.current == nil {
		return StateNone
	}
	return f.current.name
}

// Ready reports whether the machine has entered its first state.
func (f *FSM) Ready() bool {
	return f != nil && f.current != nil
}

// OnTransition registers fn to run after every transition.
func (f *FSM) OnTransition(fn TransitionFunc) {
	if fn == nil {
		return
	}
	f.hooks = append(f.hooks, fn)
}

// SetState transitions to name. Requesting the current state is a no-op;
// requesting an unregistered state panics.
func (f *FSM) SetState(name StateName) {
	if !name.Valid() {
		panic(fmt.Sprintf("character: unknown state %v", name))
	}

	prev := f.current
	if prev != nil {
		if prev.name == name {
			return
		}
		f.exit(prev)
	}

	next := &state{name: name}
	f.current = next
	f.enter(next, prev)

	from := StateNone
	if prev != nil {
		from = prev.name
	}
	for _, h := range f.hooks {
		h(from, name)
	}
}

// Update runs the current state's transition rules.
func (f *FSM) Update(dt float64, in Input) {
	if f == nil || f.current == nil {
		return
	}
	switch f.current.name {
	case StateIdle:
		if in.Moving() {
			f.SetState(StateWalk)
		} else if in.Jump {
			f.SetState(StateJump)
		}
	case StateWalk:
		if in.Moving() {
			if in.Run {
				f.SetState(StateRun)
			}
			return
		}
		f.SetState(StateIdle)
	case StateRun:
		if in.Moving() {
			if !in.Run {
				f.SetState(StateWalk)
			}
			return
		}
		f.SetState(StateIdle)
	case StateJump:
		// the clip's finished event ends the jump
	}
}

func (f *FSM) action(name StateName) *animation.Action {
	return f.anims.Action(name.Clip())
}

func (f *FSM) enter(s, prev *state) {
	switch s.name {
	case StateIdle:
		f.enterIdle(prev)
	case StateWalk:
		f.enterLocomotion(StateWalk, StateRun, prev)
	case StateRun:
		f.enterLocomotion(StateRun, StateWalk, prev)
	case StateJump:
		f.enterJump(s, prev)
	}
}

func (f *FSM) exit(s *state) {
	switch s.name {
	case StateJump:
		s.release()
	case StateIdle, StateWalk, StateRun:
	}
}

func (f *FSM) enterIdle(prev *state) {
	cur := f.action(StateIdle)
	if prev == nil {
		cur.Play()
		return
	}
	prevAction := f.action(prev.name)
	cur.SetTime(0)
	cur.SetEnabled(true)
	cur.SetEffectiveTimeScale(1)
	cur.SetEffectiveWeight(1)
	cur.CrossFadeFrom(prevAction, LocomotionFade, true)
	cur.Play()
}

// enterLocomotion starts walk or run. Coming from its partner gait the
// cursor keeps the same phase so the feet stay planted.
func (f *FSM) enterLocomotion(name, partner StateName, prev *state) {
	cur := f.action(name)
	if prev == nil {
		cur.Play()
		return
	}
	prevAction := f.action(prev.name)
	cur.SetEnabled(true)
	if prev.name == partner {
		ratio := cur.Clip().Duration / prevAction.Clip().Duration
		cur.SetTime(prevAction.Time() * ratio)
	} else {
		cur.SetTime(0)
		cur.SetEffectiveTimeScale(1)
		cur.SetEffectiveWeight(1)
	}
	cur.CrossFadeFrom(prevAction, LocomotionFade, true)
	cur.Play()
}

func (f *FSM) enterJump(s, prev *state) {
	cur := f.action(StateJump)
	s.finished = f.anims.Mixer().OnFinished(func(a *animation.Action) {
		if a != cur {
			return
		}
		f.jumpFinished(s)
	})

	cur.Reset()
	cur.SetLoop(animation.LoopOnce)
	cur.ClampWhenFinished = true
	if prev != nil {
		cur.CrossFadeFrom(f.action(prev.name), JumpFade, true)
	}
	cur.Play()
}

func (f *FSM) jumpFinished(s *state) {
	s.release()
	if f.current != s {
		return
	}
	f.SetState(StateIdle)
}
