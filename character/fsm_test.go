package character

import (
	"math"
	"testing"

	"github.com/bilelsahraoui/RemyGame/animation"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func newTestSet(names ...string) *animation.Set {
	durations := map[string]float64{
		"idle": 2,
		"walk": 1,
		"run":  0.5,
		"jump": 1,
	}
	if len(names) == 0 {
		names = []string{"idle", "walk", "run", "jump"}
	}
	set := animation.NewSet(nil)
	for _, name := range names {
		set.Add(name, animation.NewClip(name, name+".fbx", durations[name]))
	}
	return set
}

type transition struct {
	from, to StateName
}

func recordTransitions(f *FSM) *[]transition {
	var got []transition
	f.OnTransition(func(from, to StateName) {
		got = append(got, transition{from, to})
	})
	return &got
}

func TestFSMNoStateIsNoop(t *testing.T) {
	f := NewFSM(newTestSet())
	log := recordTransitions(f)

	f.Update(0.016, Input{Forward: true, Jump: true})

	if f.Ready() {
		t.Fatalf("machine should not be ready before the first state")
	}
	if f.Current() != StateNone {
		t.Fatalf("current = %v, want none", f.Current())
	}
	if len(*log) != 0 {
		t.Fatalf("expected no transitions, got %v", *log)
	}
}

func TestFSMSetStateIdempotent(t *testing.T) {
	for _, name := range States {
		t.Run(name.String(), func(t *testing.T) {
			set := newTestSet()
			f := NewFSM(set)
			log := recordTransitions(f)

			f.SetState(name)
			listeners := set.Mixer().Listeners()
			f.SetState(name)

			if f.Current() != name {
				t.Fatalf("current = %v, want %v", f.Current(), name)
			}
			if len(*log) != 1 {
				t.Fatalf("expected 1 transition, got %d", len(*log))
			}
			if set.Mixer().Listeners() != listeners {
				t.Fatalf("listeners changed on repeat SetState: %d -> %d", listeners, set.Mixer().Listeners())
			}
		})
	}
}

func TestFSMTransitions(t *testing.T) {
	cases := []struct {
		name  string
		from  StateName
		input Input
		want  StateName
	}{
		{"idle_forward_walks", StateIdle, Input{Forward: true}, StateWalk},
		{"idle_backward_walks", StateIdle, Input{Backward: true}, StateWalk},
		{"idle_jump_jumps", StateIdle, Input{Jump: true}, StateJump},
		{"idle_moving_beats_jump", StateIdle, Input{Forward: true, Jump: true}, StateWalk},
		{"idle_turning_stays", StateIdle, Input{Left: true}, StateIdle},
		{"walk_run_modifier_runs", StateWalk, Input{Forward: true, Run: true}, StateRun},
		{"walk_release_idles", StateWalk, Input{}, StateIdle},
		{"walk_keeps_walking", StateWalk, Input{Forward: true}, StateWalk},
		{"walk_ignores_jump", StateWalk, Input{Forward: true, Jump: true}, StateWalk},
		{"run_release_modifier_walks", StateRun, Input{Forward: true}, StateWalk},
		{"run_release_idles", StateRun, Input{Run: true}, StateIdle},
		{"run_keeps_running", StateRun, Input{Backward: true, Run: true}, StateRun},
		{"jump_ignores_input", StateJump, Input{Forward: true, Run: true}, StateJump},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := NewFSM(newTestSet())
			f.SetState(StateIdle)
			f.SetState(c.from)

			f.Update(0.016, c.input)

			if f.Current() != c.want {
				t.Fatalf("current = %v, want %v", f.Current(), c.want)
			}
		})
	}
}

func TestFSMPhaseContinuity(t *testing.T) {
	t.Run("walk_to_run", func(t *testing.T) {
		set := newTestSet()
		f := NewFSM(set)
		f.SetState(StateIdle)
		f.SetState(StateWalk)
		set.Action("walk").SetTime(0.75)

		f.SetState(StateRun)

		// run is half as long as walk
		if got := set.Action("run").Time(); !near(got, 0.375) {
			t.Fatalf("run time = %v, want 0.375", got)
		}
	})

	t.Run("run_to_walk", func(t *testing.T) {
		set := newTestSet()
		f := NewFSM(set)
		f.SetState(StateIdle)
		f.SetState(StateRun)
		set.Action("run").SetTime(0.25)

		f.SetState(StateWalk)

		if got := set.Action("walk").Time(); !near(got, 0.5) {
			t.Fatalf("walk time = %v, want 0.5", got)
		}
	})

	t.Run("idle_to_walk_resets", func(t *testing.T) {
		set := newTestSet()
		f := NewFSM(set)
		set.Action("walk").SetTime(0.5)
		f.SetState(StateIdle)

		f.SetState(StateWalk)

		walk := set.Action("walk")
		if walk.Time() != 0 {
			t.Fatalf("walk time = %v, want 0", walk.Time())
		}
		if walk.Weight() != 1 || walk.TimeScale() != 1 {
			t.Fatalf("walk weight/scale = %v/%v, want 1/1", walk.Weight(), walk.TimeScale())
		}
	})
}

func TestFSMCrossFade(t *testing.T) {
	set := newTestSet()
	f := NewFSM(set)
	f.SetState(StateIdle)
	set.Mixer().Update(0.25)

	f.SetState(StateWalk)
	set.Mixer().Update(0.25)

	idle, walk := set.Action("idle"), set.Action("walk")
	if !near(walk.EffectiveWeight(), 0.5) || !near(idle.EffectiveWeight(), 0.5) {
		t.Fatalf("mid-fade weights walk=%v idle=%v, want 0.5/0.5", walk.EffectiveWeight(), idle.EffectiveWeight())
	}

	set.Mixer().Update(0.25)
	if !near(walk.EffectiveWeight(), 1) || idle.EffectiveWeight() != 0 {
		t.Fatalf("settled weights walk=%v idle=%v, want 1/0", walk.EffectiveWeight(), idle.EffectiveWeight())
	}
}

func TestFSMJumpLifecycle(t *testing.T) {
	set := newTestSet()
	mixer := set.Mixer()
	f := NewFSM(set)
	f.SetState(StateIdle)
	log := recordTransitions(f)

	f.SetState(StateJump)
	if mixer.Listeners() != 1 {
		t.Fatalf("expected 1 finished listener after entering jump, got %d", mixer.Listeners())
	}

	f.SetState(StateJump)
	if mixer.Listeners() != 1 {
		t.Fatalf("re-entering jump registered another listener: %d", mixer.Listeners())
	}

	for i := 0; i < 32 && f.Current() == StateJump; i++ {
		f.Update(0.125, Input{Forward: true})
		mixer.Update(0.125)
	}

	if f.Current() != StateIdle {
		t.Fatalf("current = %v after jump clip ended, want idle", f.Current())
	}
	if mixer.Listeners() != 0 {
		t.Fatalf("expected listener released after jump, got %d", mixer.Listeners())
	}

	for i := 0; i < 16; i++ {
		mixer.Update(0.125)
	}

	want := []transition{{StateIdle, StateJump}, {StateJump, StateIdle}}
	if len(*log) != len(want) {
		t.Fatalf("transitions = %v, want %v", *log, want)
	}
	for i := range want {
		if (*log)[i] != want[i] {
			t.Fatalf("transition %d = %v, want %v", i, (*log)[i], want[i])
		}
	}
}

func TestFSMJumpHoldsLastPose(t *testing.T) {
	set := newTestSet()
	f := NewFSM(set)
	f.SetState(StateJump)
	jump := set.Action("jump")

	var seen bool
	set.Mixer().OnFinished(func(a *animation.Action) {
		if a != jump {
			return
		}
		seen = true
		if !near(a.Time(), a.Clip().Duration) {
			t.Fatalf("jump time at finish = %v, want %v", a.Time(), a.Clip().Duration)
		}
		if !a.Paused() {
			t.Fatalf("jump should be clamped on its last frame")
		}
	})

	for i := 0; i < 16 && !seen; i++ {
		set.Mixer().Update(0.125)
	}
	if !seen {
		t.Fatalf("jump never finished")
	}
}

func TestFSMJumpExitReleasesListener(t *testing.T) {
	set := newTestSet()
	f := NewFSM(set)
	f.SetState(StateIdle)
	f.SetState(StateJump)

	f.SetState(StateWalk)

	if set.Mixer().Listeners() != 0 {
		t.Fatalf("expected listener released on exit, got %d", set.Mixer().Listeners())
	}
	for i := 0; i < 16; i++ {
		set.Mixer().Update(0.125)
	}
	if f.Current() != StateWalk {
		t.Fatalf("stale jump listener moved state to %v", f.Current())
	}
}

func TestFSMPanics(t *testing.T) {
	cases := []struct {
		name string
		set  *animation.Set
		to   StateName
	}{
		{"unknown_state", newTestSet(), StateName(42)},
		{"none_state", newTestSet(), StateNone},
		{"missing_animation", newTestSet("idle"), StateJump},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := NewFSM(c.set)
			f.SetState(StateIdle)
			defer func() {
				if recover() == nil {
					t.Fatalf("SetState(%v) should panic", c.to)
				}
			}()
			f.SetState(c.to)
		})
	}
}

func TestParseStateName(t *testing.T) {
	for _, s := range States {
		got, err := ParseStateName(s.String())
		if err != nil || got != s {
			t.Fatalf("ParseStateName(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStateName("crouch"); err == nil {
		t.Fatalf("expected error for unknown name")
	}
}
