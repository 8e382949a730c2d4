package animation

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestCrossFade(t *testing.T) {
	m := NewMixer()
	idle := m.ClipAction(NewClip("idle", "", 1))
	walk := m.ClipAction(NewClip("walk", "", 1))

	idle.Play()
	m.Update(0.25)

	walk.Reset()
	walk.CrossFadeFrom(idle, 0.5, false)
	walk.Play()

	steps := []struct {
		name     string
		dt       float64
		walkW    float64
		idleW    float64
		idleOn   bool
		fadingIn bool
	}{
		{"halfway", 0.25, 0.5, 0.5, true, true},
		{"complete", 0.25, 1, 0, false, false},
		{"settled", 0.25, 1, 0, false, false},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			m.Update(step.dt)
			if !near(walk.EffectiveWeight(), step.walkW) {
				t.Fatalf("walk weight = %v, want %v", walk.EffectiveWeight(), step.walkW)
			}
			if !near(idle.EffectiveWeight(), step.idleW) {
				t.Fatalf("idle weight = %v, want %v", idle.EffectiveWeight(), step.idleW)
			}
			if idle.Enabled() != step.idleOn {
				t.Fatalf("idle enabled = %v, want %v", idle.Enabled(), step.idleOn)
			}
			if walk.IsFading() != step.fadingIn {
				t.Fatalf("walk fading = %v, want %v", walk.IsFading(), step.fadingIn)
			}
		})
	}
}

func TestCrossFadeWarp(t *testing.T) {
	m := NewMixer()
	walk := m.ClipAction(NewClip("walk", "", 1))
	run := m.ClipAction(NewClip("run", "", 0.5))

	walk.Play()
	run.CrossFadeFrom(walk, 0.5, true)
	run.Play()

	// both clips start on the walk cadence: run at half speed
	m.Update(1e-6)
	if math.Abs(run.EffectiveTimeScale()-0.5) > 1e-5 {
		t.Fatalf("run time scale at fade start = %v, want 0.5", run.EffectiveTimeScale())
	}
	if period := run.Clip().Duration / run.EffectiveTimeScale(); math.Abs(period-1) > 1e-4 {
		t.Fatalf("run cycle period at fade start = %v, want 1", period)
	}

	m.Update(0.25 - 1e-6)
	if !near(run.EffectiveTimeScale(), 0.75) {
		t.Fatalf("run time scale mid-fade = %v, want 0.75", run.EffectiveTimeScale())
	}
	if !near(walk.EffectiveTimeScale(), 1.5) {
		t.Fatalf("walk time scale mid-fade = %v, want 1.5", walk.EffectiveTimeScale())
	}

	m.Update(0.25)
	m.Update(0.25)
	if !near(run.EffectiveTimeScale(), 1) {
		t.Fatalf("run time scale after fade = %v, want 1", run.EffectiveTimeScale())
	}
}

func TestLoopOnce(t *testing.T) {
	t.Run("clamp_holds_last_pose", func(t *testing.T) {
		m := NewMixer()
		jump := m.ClipAction(NewClip("jump", "", 0.5))
		jump.SetLoop(LoopOnce)
		jump.ClampWhenFinished = true
		jump.Play()

		fired := 0
		m.OnFinished(func(a *Action) {
			if a != jump {
				t.Fatalf("finished for unexpected action %s", a.Clip().Name)
			}
			fired++
		})

		for i := 0; i < 4; i++ {
			m.Update(0.25)
		}
		if fired != 1 {
			t.Fatalf("finished fired %d times, want 1", fired)
		}
		if !near(jump.Time(), 0.5) {
			t.Fatalf("time = %v, want clip end", jump.Time())
		}
		if !jump.Paused() || !jump.Enabled() {
			t.Fatalf("expected paused and enabled, got paused=%v enabled=%v", jump.Paused(), jump.Enabled())
		}
		if !near(jump.EffectiveWeight(), 1) {
			t.Fatalf("clamped weight = %v, want 1", jump.EffectiveWeight())
		}
	})

	t.Run("no_clamp_disables", func(t *testing.T) {
		m := NewMixer()
		jump := m.ClipAction(NewClip("jump", "", 0.5))
		jump.SetLoop(LoopOnce)
		jump.Play()
		m.Update(0.75)
		if jump.Enabled() {
			t.Fatalf("expected action disabled after finishing")
		}
		if jump.EffectiveWeight() != 0 {
			t.Fatalf("disabled action weight = %v", jump.EffectiveWeight())
		}
	})

	t.Run("reset_rearms_finish", func(t *testing.T) {
		m := NewMixer()
		jump := m.ClipAction(NewClip("jump", "", 0.5))
		jump.SetLoop(LoopOnce)
		jump.ClampWhenFinished = true
		jump.Play()

		fired := 0
		m.OnFinished(func(*Action) { fired++ })
		m.Update(0.5)
		jump.Reset()
		m.Update(0.5)
		if fired != 2 {
			t.Fatalf("finished fired %d times across two plays, want 2", fired)
		}
	})
}

func TestLoopRepeatWraps(t *testing.T) {
	m := NewMixer()
	walk := m.ClipAction(NewClip("walk", "", 1))
	walk.Play()
	m.Update(0.75)
	m.Update(0.75)
	if !near(walk.Time(), 0.5) {
		t.Fatalf("time = %v, want 0.5", walk.Time())
	}
	if !walk.IsRunning() {
		t.Fatalf("repeating action should keep running")
	}
}

func TestSubscription(t *testing.T) {
	m := NewMixer()
	jump := m.ClipAction(NewClip("jump", "", 0.25))
	jump.SetLoop(LoopOnce)
	jump.Play()

	var order []string
	var first *Subscription
	first = m.OnFinished(func(*Action) {
		order = append(order, "first")
		first.Cancel()
	})
	m.OnFinished(func(*Action) { order = append(order, "second") })

	if m.Listeners() != 2 {
		t.Fatalf("listeners = %d, want 2", m.Listeners())
	}

	m.Update(0.5)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("dispatch order = %v", order)
	}
	if first.Active() {
		t.Fatalf("self-cancelled subscription still active")
	}
	if first.Cancel() {
		t.Fatalf("second cancel should report nothing removed")
	}
	if m.Listeners() != 1 {
		t.Fatalf("listeners = %d, want 1", m.Listeners())
	}
}

func TestSet(t *testing.T) {
	s := NewSet(nil)
	s.Add("walk", NewClip("walk", "Walking.fbx", 1))
	s.Add("idle", NewClip("idle", "Happy Idle.fbx", 2))

	if got := s.Names(); len(got) != 2 || got[0] != "idle" || got[1] != "walk" {
		t.Fatalf("names = %v", got)
	}

	s.Action("idle").Play()
	weights := s.Weights()
	if weights[0].Name != "idle" || weights[0].Weight != 1 {
		t.Fatalf("idle weight snapshot = %+v", weights[0])
	}
	if weights[1].Weight != 0 {
		t.Fatalf("unscheduled walk should not contribute, got %+v", weights[1])
	}

	t.Run("missing_panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic for missing clip")
			}
		}()
		s.Action("dance")
	})
}
