package animation

// FinishedFunc is called when a once-only action reaches its end.
type FinishedFunc func(a *Action)

type listener struct {
	id uint64
	fn FinishedFunc
}

// Mixer advances scheduled actions and dispatches finished events.
type Mixer struct {
	time    float64
	actions map[*Clip]*Action
	active  []*Action

	nextID    uint64
	listeners []listener
}

// NewMixer creates an empty mixer.
func NewMixer() *Mixer {
	return &Mixer{actions: make(map[*Clip]*Action)}
}

// Time returns the accumulated mixer time in seconds.
func (m *Mixer) Time() float64 { return m.time }

// ClipAction returns the action for clip, creating it on first use.
func (m *Mixer) ClipAction(clip *Clip) *Action {
	if a, ok := m.actions[clip]; ok {
		return a
	}
	a := newAction(m, clip)
	m.actions[clip] = a
	return a
}

// Active returns the scheduled actions in scheduling order.
func (m *Mixer) Active() []*Action {
	return append([]*Action(nil), m.active...)
}

func (m *Mixer) activate(a *Action) {
	if a.scheduled {
		return
	}
	a.scheduled = true
	m.active = append(m.active, a)
}

func (m *Mixer) deactivate(a *Action) {
	if !a.scheduled {
		return
	}
	a.scheduled = false
	for i, act := range m.active {
		if act == a {
			m.active = append(m.active[:i], m.active[i+1:]...)
			return
		}
	}
}

// Update advances every scheduled action by dt seconds, then dispatches
// finished events. Listeners may start crossfades or cancel themselves.
func (m *Mixer) Update(dt float64) {
	m.time += dt

	var finished []*Action
	for _, a := range m.Active() {
		if a.update(m.time, dt) {
			finished = append(finished, a)
		}
	}
	for _, a := range finished {
		m.dispatchFinished(a)
	}
}

// OnFinished registers fn for finished events and returns the token that
// releases it.
func (m *Mixer) OnFinished(fn FinishedFunc) *Subscription {
	m.nextID++
	m.listeners = append(m.listeners, listener{id: m.nextID, fn: fn})
	return &Subscription{mixer: m, id: m.nextID}
}

// Listeners returns the number of registered finished listeners.
func (m *Mixer) Listeners() int {
	return len(m.listeners)
}

func (m *Mixer) dispatchFinished(a *Action) {
	snapshot := append([]listener(nil), m.listeners...)
	for _, l := range snapshot {
		if !m.registered(l.id) {
			continue
		}
		l.fn(a)
	}
}

func (m *Mixer) registered(id uint64) bool {
	for _, l := range m.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}

func (m *Mixer) remove(id uint64) bool {
	for i, l := range m.listeners {
		if l.id == id {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Subscription is a single-shot handle on a finished listener.
type Subscription struct {
	mixer *Mixer
	id    uint64
}

// Cancel removes the listener. It reports whether anything was removed;
// cancelling twice is a no-op.
func (s *Subscription) Cancel() bool {
	if s == nil || s.mixer == nil {
		return false
	}
	removed := s.mixer.remove(s.id)
	s.mixer = nil
	return removed
}

// Active reports whether the listener is still registered.
func (s *Subscription) Active() bool {
	return s != nil && s.mixer != nil && s.mixer.registered(s.id)
}
