package animation

import (
	"fmt"
	"sort"
)

// Entry pairs a loaded clip with its playback handle.
type Entry struct {
	Clip   *Clip
	Action *Action
}

// Weight is a read-only snapshot of one action's contribution.
type Weight struct {
	Name   string
	Weight float64
	Time   float64
}

// Set maps symbolic state names to clips and their actions on one mixer.
// Entries are added once when loading completes and never removed.
type Set struct {
	mixer   *Mixer
	entries map[string]Entry
}

// NewSet creates an empty set bound to mixer.
func NewSet(mixer *Mixer) *Set {
	if mixer == nil {
		mixer = NewMixer()
	}
	return &Set{mixer: mixer, entries: make(map[string]Entry)}
}

// Add registers clip under name and returns its action.
func (s *Set) Add(name string, clip *Clip) *Action {
	if e, ok := s.entries[name]; ok {
		return e.Action
	}
	a := s.mixer.ClipAction(clip)
	s.entries[name] = Entry{Clip: clip, Action: a}
	return a
}

// Mixer returns the mixer driving the set.
func (s *Set) Mixer() *Mixer { return s.mixer }

// Has reports whether name was loaded.
func (s *Set) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Action returns the playback handle for name. Asking for an animation that
// was never loaded is a programming error and panics.
func (s *Set) Action(name string) *Action {
	e, ok := s.entries[name]
	if !ok {
		panic(fmt.Sprintf("animation: no clip loaded for %q", name))
	}
	return e.Action
}

// Clip returns the clip for name, panicking like Action when missing.
func (s *Set) Clip(name string) *Clip {
	e, ok := s.entries[name]
	if !ok {
		panic(fmt.Sprintf("animation: no clip loaded for %q", name))
	}
	return e.Clip
}

// Names returns the loaded names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Weights returns the current blend, sorted by name.
func (s *Set) Weights() []Weight {
	out := make([]Weight, 0, len(s.entries))
	for _, name := range s.Names() {
		a := s.entries[name].Action
		out = append(out, Weight{Name: name, Weight: a.EffectiveWeight(), Time: a.Time()})
	}
	return out
}
