package animation

import "math"

// LoopMode controls what an action does when its cursor reaches the clip end.
type LoopMode int

const (
	LoopRepeat LoopMode = iota
	LoopOnce
)

func (m LoopMode) String() string {
	switch m {
	case LoopOnce:
		return "once"
	default:
		return "repeat"
	}
}

// interpolant ramps a value linearly between two points in mixer time.
type interpolant struct {
	start    float64
	duration float64
	from     float64
	to       float64
}

// eval returns the value at now and whether the ramp has completed.
func (i *interpolant) eval(now float64) (float64, bool) {
	if i.duration <= 0 {
		return i.to, true
	}
	t := (now - i.start) / i.duration
	if t >= 1 {
		return i.to, true
	}
	if t < 0 {
		t = 0
	}
	return i.from + (i.to-i.from)*t, false
}

// Action is the live playback handle of one clip on a mixer.
type Action struct {
	mixer *Mixer
	clip  *Clip

	time      float64
	timeScale float64
	weight    float64

	loop              LoopMode
	ClampWhenFinished bool

	enabled   bool
	paused    bool
	scheduled bool
	finished  bool
	loopCount int

	weightFade *interpolant
	scaleWarp  *interpolant

	effectiveWeight float64
	effectiveScale  float64
}

func newAction(m *Mixer, clip *Clip) *Action {
	return &Action{
		mixer:           m,
		clip:            clip,
		timeScale:       1,
		weight:          1,
		enabled:         true,
		loopCount:       -1,
		effectiveWeight: 1,
		effectiveScale:  1,
	}
}

// Clip returns the clip this action plays.
func (a *Action) Clip() *Clip { return a.clip }

// Mixer returns the owning mixer.
func (a *Action) Mixer() *Mixer { return a.mixer }

// Time returns the local time cursor in seconds.
func (a *Action) Time() float64 { return a.time }

// SetTime moves the time cursor.
func (a *Action) SetTime(t float64) {
	a.time = t
	a.finished = false
}

func (a *Action) Enabled() bool { return a.enabled }

// SetEnabled toggles whether the action contributes to the blend.
func (a *Action) SetEnabled(enabled bool) {
	a.enabled = enabled
	if !enabled {
		a.effectiveWeight = 0
	}
}

func (a *Action) Paused() bool { return a.paused }

func (a *Action) Loop() LoopMode { return a.loop }

// SetLoop sets the loop mode.
func (a *Action) SetLoop(mode LoopMode) {
	a.loop = mode
}

// EffectiveWeight is the weight the action contributed on the last mixer update.
func (a *Action) EffectiveWeight() float64 {
	if !a.enabled || !a.scheduled {
		return 0
	}
	return a.effectiveWeight
}

// Weight returns the base weight that fades are applied to.
func (a *Action) Weight() float64 { return a.weight }

// TimeScale returns the base time-scale that warps are applied to.
func (a *Action) TimeScale() float64 { return a.timeScale }

// SetEffectiveWeight sets the base weight and cancels any running fade.
func (a *Action) SetEffectiveWeight(w float64) {
	a.weight = w
	a.weightFade = nil
	if a.enabled {
		a.effectiveWeight = w
	} else {
		a.effectiveWeight = 0
	}
}

// EffectiveTimeScale is the time-scale applied on the last mixer update.
func (a *Action) EffectiveTimeScale() float64 {
	if a.paused {
		return 0
	}
	return a.effectiveScale
}

// SetEffectiveTimeScale sets the base time-scale and cancels any warp.
func (a *Action) SetEffectiveTimeScale(s float64) {
	a.timeScale = s
	a.scaleWarp = nil
	a.effectiveScale = s
}

// Reset rewinds the action and clears pause, fades and warps.
func (a *Action) Reset() {
	a.paused = false
	a.enabled = true
	a.finished = false
	a.time = 0
	a.loopCount = -1
	a.weightFade = nil
	a.scaleWarp = nil
	a.effectiveWeight = a.weight
	a.effectiveScale = a.timeScale
}

// Play schedules the action on its mixer.
func (a *Action) Play() {
	a.mixer.activate(a)
}

// Stop unschedules the action and resets it.
func (a *Action) Stop() {
	a.mixer.deactivate(a)
	a.Reset()
}

// IsRunning reports whether the action is scheduled and advancing.
func (a *Action) IsRunning() bool {
	return a.scheduled && a.enabled && !a.paused && a.timeScale != 0
}

// IsFading reports whether a weight ramp is in progress.
func (a *Action) IsFading() bool {
	return a.weightFade != nil
}

// FadeIn ramps the weight from 0 to the base weight over d seconds.
func (a *Action) FadeIn(d float64) {
	a.scheduleFade(d, 0, 1)
}

// FadeOut ramps the weight from the base weight to 0 over d seconds.
func (a *Action) FadeOut(d float64) {
	a.scheduleFade(d, 1, 0)
}

// CrossFadeFrom fades prev out and a in over d seconds. With warp the
// incoming clip starts at the outgoing clip's cycle period and the outgoing
// clip ends at the incoming one's, so both share a cadence during the fade.
func (a *Action) CrossFadeFrom(prev *Action, d float64, warp bool) {
	prev.FadeOut(d)
	a.FadeIn(d)
	if !warp {
		return
	}
	inDur := a.clip.Duration
	outDur := prev.clip.Duration
	prev.Warp(1, outDur/inDur, d)
	a.Warp(inDur/outDur, 1, d)
}

// Warp ramps the effective time-scale from start to end over d seconds. The
// values are absolute; when the ramp completes the base time-scale is end.
func (a *Action) Warp(start, end, d float64) {
	if a.timeScale == 0 {
		a.timeScale = 1
	}
	a.scaleWarp = &interpolant{
		start:    a.mixer.time,
		duration: d,
		from:     start / a.timeScale,
		to:       end / a.timeScale,
	}
}

func (a *Action) scheduleFade(d, from, to float64) {
	a.weightFade = &interpolant{
		start:    a.mixer.time,
		duration: d,
		from:     from,
		to:       to,
	}
	a.effectiveWeight = a.weight * from
}

// update advances the action to mixer time now. It reports whether the
// action finished during this step.
func (a *Action) update(now, dt float64) bool {
	if !a.enabled {
		a.updateWeight(now)
		return false
	}
	scale := a.updateTimeScale(now)
	finished := a.updateTime(dt * scale)
	a.updateWeight(now)
	return finished
}

func (a *Action) updateWeight(now float64) {
	if !a.enabled {
		a.effectiveWeight = 0
		return
	}
	w := a.weight
	if a.weightFade != nil {
		v, done := a.weightFade.eval(now)
		w *= v
		if done {
			a.weightFade = nil
			if v == 0 {
				a.enabled = false
				w = 0
			}
		}
	}
	a.effectiveWeight = w
}

func (a *Action) updateTimeScale(now float64) float64 {
	if a.paused {
		a.effectiveScale = 0
		return 0
	}
	s := a.timeScale
	if a.scaleWarp != nil {
		v, done := a.scaleWarp.eval(now)
		s *= v
		if done {
			a.scaleWarp = nil
			if s == 0 {
				a.paused = true
			} else {
				a.timeScale = s
			}
		}
	}
	a.effectiveScale = s
	return s
}

func (a *Action) updateTime(dt float64) bool {
	if dt == 0 {
		return false
	}
	d := a.clip.Duration
	t := a.time + dt

	if a.loop == LoopOnce {
		a.loopCount = 0
		switch {
		case t >= d:
			t = d
		case t < 0:
			t = 0
		default:
			a.time = t
			return false
		}
		a.time = t
		if a.ClampWhenFinished {
			a.paused = true
		} else {
			a.enabled = false
		}
		if a.finished {
			return false
		}
		a.finished = true
		return true
	}

	if a.loopCount == -1 {
		a.loopCount = 0
	}
	if t >= d || t < 0 {
		loops := math.Floor(t / d)
		t -= d * loops
		if loops < 0 {
			loops = -loops
		}
		a.loopCount += int(loops)
	}
	a.time = t
	return false
}
